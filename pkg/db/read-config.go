package db

import (
	"fmt"
)

// DBConfigFromYamlObj builds the connection config from the parsed yaml section.
// Username and password are expected to be already overridden from env variables
// if they are managed as secrets.
func DBConfigFromYamlObj(yamlObj DBConfigYaml, instanceIDs []string) DBConfig {
	connStr := yamlObj.ConnectionStr
	username := yamlObj.Username
	password := yamlObj.Password
	prefix := yamlObj.ConnectionPrefix // e.g. "+srv" for mongodb+srv

	var uri string
	if username == "" && password == "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, prefix, connStr)
	} else {
		uri = fmt.Sprintf(`mongodb%s://%s:%s@%s`, prefix, username, password, connStr)
	}

	return DBConfig{
		URI:              uri,
		Timeout:          yamlObj.Timeout,
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		MaxPoolSize:      uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout:  yamlObj.UseNoCursorTimeout,
		DBNamePrefix:     yamlObj.DBNamePrefix,
		InstanceIDs:      instanceIDs,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
