package cmd

import "fmt"

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DesignServiceURL  string
	StorageServiceURL string
	PackageOutputDir  string
	RabbitMQURL       string
	RabbitMQExchange  string
	KafkaHost         string
	KafkaPhaseTopic   string
}

// DSN builds the postgres connection string from the database settings.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
