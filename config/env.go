package config

import (
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

var Env *envConfigs

func init() {
	Env = loadEnvVariables()
}

type envConfigs struct {
	ClustersFile          string `mapstructure:"ClustersFile"`
	OutputDir             string `mapstructure:"OutputDir"`
	ReportIntervalMinutes int    `mapstructure:"ReportIntervalMinutes"`
	SmtpHost              string `mapstructure:"SmtpHost"`
	SmtpPort              int    `mapstructure:"SmtpPort"`
	SmtpUsername          string `mapstructure:"SmtpUsername"`
	SmtpPassword          string `mapstructure:"SmtpPassword"`
	MailFrom              string `mapstructure:"MailFrom"`
	PrimaryTo             string `mapstructure:"PrimaryTo"`
	PrimaryCc             string `mapstructure:"PrimaryCc"`
	LeadershipTo          string `mapstructure:"LeadershipTo"`
	LeadershipCc          string `mapstructure:"LeadershipCc"`
	OperationsTo          string `mapstructure:"OperationsTo"`
	OperationsCc          string `mapstructure:"OperationsCc"`
	NatsBucketName        string `mapstructure:"NatsBucketName"`
	NatsId                string `mapstructure:"NatsId"`
	NatsKeyName           string `mapstructure:"NatsKeyName"`
	NatsPassword          string `mapstructure:"NatsPassword"`
	NatsUrl               string `mapstructure:"NatsUrl"`
	VaultRoleId           string `mapstructure:"VaultRoleId"`
	VaultSecretId         string `mapstructure:"VaultSecretId"`
	VaultUrl              string `mapstructure:"VaultUrl"`
}

var envDefaults = map[string]interface{}{
	"ClustersFile":          "clusters.yaml",
	"OutputDir":             "reports",
	"ReportIntervalMinutes": 0,
	"SmtpHost":              "localhost",
	"SmtpPort":              25,
	"SmtpUsername":          "",
	"SmtpPassword":          "",
	"MailFrom":              "",
	"PrimaryTo":             "",
	"PrimaryCc":             "",
	"LeadershipTo":          "",
	"LeadershipCc":          "",
	"OperationsTo":          "",
	"OperationsCc":          "",
	"NatsBucketName":        "cluster-health",
	"NatsId":                "",
	"NatsKeyName":           "latest-report",
	"NatsPassword":          "",
	"NatsUrl":               "",
	"VaultRoleId":           "",
	"VaultSecretId":         "",
	"VaultUrl":              "",
}

func loadEnvVariables() (config *envConfigs) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")

	for key, value := range envDefaults {
		viper.SetDefault(key, value)
	}

	// A missing config.env falls back to defaults; the clusters source is
	// validated separately and stays fatal when absent.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal("Error reading env file", err)
		}
	}
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal(err)
	}
	return
}
