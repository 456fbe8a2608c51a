package smtp_client

import (
	"log/slog"
	"net/textproto"

	"github.com/knadh/smtppool"
)

// HeaderOverrides lets a caller replace the envelope defaults of the server
// list for a single message.
type HeaderOverrides struct {
	From      string   `json:"from"`
	Sender    string   `json:"sender"`
	ReplyTo   []string `json:"replyTo"`
	NoReplyTo bool     `json:"noReplyTo"`
}

func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
	overrides *HeaderOverrides,
) error {
	sc.counter += 1
	if len(sc.connectionPool) < 1 {
		pools, err := initConnectionPool(sc.servers)
		if err != nil {
			return err
		}
		sc.connectionPool = pools
	}

	index := int(sc.counter % uint64(len(sc.connectionPool)))
	selectedServer := sc.connectionPool[index]

	From := sc.servers.From
	Sender := sc.servers.Sender
	ReplyTo := sc.servers.ReplyTo

	if overrides != nil {
		if overrides.From != "" {
			From = overrides.From
		}
		if overrides.Sender != "" {
			Sender = overrides.Sender
		}

		if overrides.NoReplyTo {
			ReplyTo = []string{}
		} else if len(overrides.ReplyTo) > 0 {
			ReplyTo = overrides.ReplyTo
		}
	}

	e := smtppool.Email{
		To:      to,
		From:    From,
		Sender:  Sender,
		ReplyTo: ReplyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}
	err := selectedServer.Send(e)

	if err != nil {
		// close and try to reconnect
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		pool, errReconnect := connectToPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", sc.servers.Servers[index].Host))
		} else {
			slog.Error("reconnected to pool", slog.String("server", sc.servers.Servers[index].Host))
			sc.connectionPool[index] = pool
		}
	}
	return err
}
