package utils

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestLoggerConfigFromYaml(t *testing.T) {
	raw := []byte(`log_to_file: true
filename: /var/log/assessment-api.log
max_size: 50
max_age: 14
max_backups: 3
log_level: debug
include_src: true
compress_old_logs: true
include_build_info: once
`)

	var conf LoggerConfig
	if err := yaml.UnmarshalStrict(raw, &conf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", conf.LogLevel)
	}
	if conf.IncludeBuildInfo != "once" {
		t.Errorf("expected include_build_info once, got %q", conf.IncludeBuildInfo)
	}
}

func TestInitLoggerAcceptsFullConfig(t *testing.T) {
	conf := LoggerConfig{
		LogLevel:         "info",
		IncludeSrc:       false,
		LogToFile:        false,
		IncludeBuildInfo: "never",
	}

	InitLogger(
		conf.LogLevel,
		conf.IncludeSrc,
		conf.LogToFile,
		conf.Filename,
		conf.MaxSize,
		conf.MaxAge,
		conf.MaxBackups,
		conf.CompressOldLogs,
		conf.IncludeBuildInfo,
	)
}

func TestGetBuildInfoMode(t *testing.T) {
	testCases := []struct {
		value string
		want  BuildInfoMode
	}{
		{"never", BuildInfoNever},
		{"once", BuildInfoOnce},
		{"always", BuildInfoAlways},
		{"", BuildInfoNever},
		{"bogus", BuildInfoNever},
	}

	for _, tc := range testCases {
		if got := getBuildInfoMode(tc.value); got != tc.want {
			t.Errorf("getBuildInfoMode(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
