package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NeuralTrust/TrustImage/pkg/config"
	"github.com/NeuralTrust/TrustImage/pkg/dependency_container"
	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	infraLogger "github.com/NeuralTrust/TrustImage/pkg/infra/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	auditVerbose bool
	auditCache   bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <file>",
	Short: "Evaluate a local image and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().BoolVarP(&auditVerbose, "verbose", "v", false, "log every stage to stderr")
	auditCmd.Flags().BoolVar(&auditCache, "cache", false, "read and write the shared verdict cache")
}

func runAudit(cmd *cobra.Command, args []string) error {
	logger := infraLogger.NewConsoleLogger(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if auditVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if err := config.Load(configPath); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	stack, err := dependency_container.NewAuditStack(config.GetConfig(), logger, auditCache)
	if err != nil {
		return err
	}
	if stack.Redis != nil {
		defer stack.Redis.Close()
	}

	result, err := stack.Evaluator.Evaluate(cmd.Context(), audit.NewContentBlob(data, filepath.Base(args[0])))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
