package smtp_client

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"time"

	"github.com/knadh/smtppool"
)

// SmtpClients fans outgoing mail out over a set of pooled server
// connections, round-robin. The bridge keeps one instance per priority
// class.
type SmtpClients struct {
	servers        SmtpServerList
	connectionPool []*smtppool.Pool
	counter        uint64
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	pools, err := initConnectionPool(config)
	if err != nil {
		return nil, err
	}

	return &SmtpClients{
		servers:        config,
		counter:        0,
		connectionPool: pools,
	}, nil
}

// initConnectionPool connects every configured server. Individual servers
// may fail, an empty pool is an error.
func initConnectionPool(serverList SmtpServerList) ([]*smtppool.Pool, error) {
	connectionPools := []*smtppool.Pool{}
	for _, server := range serverList.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			slog.Error("error setting up connection pool", slog.String("error", err.Error()), slog.String("server", server.Address()))
			continue
		}
		connectionPools = append(connectionPools, pool)
	}
	if len(connectionPools) < 1 {
		return nil, fmt.Errorf("no smtp server connection in the pool")
	}
	return connectionPools, nil
}

func connectToPool(server SmtpServer) (*smtppool.Pool, error) {
	var auth smtp.Auth
	if server.AuthData.Username != "" || server.AuthData.Password != "" {
		auth = smtp.PlainAuth(
			"",
			server.AuthData.Username,
			server.AuthData.Password,
			server.Host,
		)
	}

	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	return smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        server.Connections,
		IdleTimeout:     time.Duration(server.SendTimeout) * time.Second,
		PoolWaitTimeout: time.Duration(server.SendTimeout) * time.Second,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: server.InsecureSkipVerify,
			ServerName:         server.Host,
		},
		Auth: auth,
	})
}
