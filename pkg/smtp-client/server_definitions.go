package smtp_client

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"
)

// SmtpServerList is one priority class of the bridge: the servers mail is
// balanced over plus the envelope defaults applied to every message sent
// through them.
type SmtpServerList struct {
	Servers []SmtpServer `yaml:"servers"`
	From    string       `yaml:"from"`
	Sender  string       `yaml:"sender"`
	ReplyTo []string     `yaml:"replyTo"`
}

type SmtpServer struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	Connections        int    `yaml:"connections"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	AuthData           struct {
		Username string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	SendTimeout int `yaml:"sendTimeout"`
}

func (s *SmtpServer) Address() string {
	return s.Host + ":" + s.Port
}

// SetUsername and SetPassword exist so credentials can be overridden from
// environment variables after the yaml config is loaded.
func (s *SmtpServer) SetUsername(username string) {
	s.AuthData.Username = username
}

func (s *SmtpServer) SetPassword(password string) {
	s.AuthData.Password = password
}

func (sl *SmtpServerList) ReadFromFile(fname string) error {
	yamlFile, err := os.ReadFile(fname)
	if err != nil {
		slog.Error("could not read server config file", slog.String("file", fname), slog.String("error", err.Error()))
		return err
	}
	return yaml.UnmarshalStrict(yamlFile, sl)
}
