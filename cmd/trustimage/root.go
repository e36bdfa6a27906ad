package main

import (
	"fmt"
	"log"
	"os"

	"github.com/NeuralTrust/TrustImage/pkg/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "trustimage",
	Short: "Asynchronous content-safety review for published images",
	Long: "TrustImage reviews uploaded images after they are published and\n" +
		"removes the object, its history records and notifies the owner when\n" +
		"a classifier stage rejects the content.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		envFile := os.Getenv("ENV_FILE")
		if envFile == "" {
			envFile = ".env"
		}
		if err := godotenv.Load(envFile); err != nil {
			log.Println("no .env file found, using system environment variables")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config", "directory holding config.yaml")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.Version = version.Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
