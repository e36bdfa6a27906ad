package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/NeuralTrust/TrustImage/pkg/config"
	"github.com/NeuralTrust/TrustImage/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	AdminServerDI struct {
		Routers []router.ServerRouter
		Config  *config.Config
		Logger  *logrus.Logger
	}
	AdminServer struct {
		*BaseServer
		routers []router.ServerRouter
	}
)

func NewAdminServer(di AdminServerDI) *AdminServer {
	s := &AdminServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
		routers:    di.Routers,
	}
	// health and metrics stay outside the authenticated group
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	s.WithRouters(s.routers...)
	return s
}

func (s *AdminServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.AdminPort)
	tlsConfig, err := config.BuildTLSConfig(&s.Config.Server.TLS)
	if err != nil {
		return fmt.Errorf("admin server tls: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{
		"addr": addr,
		"tls":  tlsConfig != nil,
	}).Info("starting admin server")

	if tlsConfig == nil {
		return s.Router.Listen(addr)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Router.Listener(tls.NewListener(ln, tlsConfig))
}

func (s *AdminServer) Shutdown() error {
	return s.Router.Shutdown()
}
