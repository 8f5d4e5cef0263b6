package config

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	// OpsMailbox is the single destination for recovery alerts. All
	// operational notifications go to one mailbox, not to end users.
	OpsMailbox string `yaml:"ops_mailbox"`
	SSL        bool   `yaml:"ssl"`
	TLS        bool   `yaml:"tls"`
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:       getEnvAsInt("SMTP_PORT", 587),
		Username:   getEnv("SMTP_USERNAME", ""),
		Password:   getEnv("SMTP_PASSWORD", ""),
		FromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@finderid.info"),
		FromName:   getEnv("SMTP_FROM_NAME", "FinderID"),
		OpsMailbox: getEnv("SMTP_OPS_MAILBOX", "support@finderid.info"),
		SSL:        getEnvAsBool("SMTP_SSL", false),
		TLS:        getEnvAsBool("SMTP_TLS", true),
	}
}
