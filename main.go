package main

import (
	"abcpay/config"
	"abcpay/internal"
	"abcpay/services"
	"flag"
)

func main() {

	logger := internal.NewLogger("boot", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	var database services.Database
	if conf.Mongo.Enabled {
		database, err = internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		logger.Info("mongo client initialized")
	}

	if conf.Wallet.AppId == config.DefaultWalletAppId || conf.Wallet.ApiSecret == config.DefaultWalletApiSecret {
		logger.Warn("wallet sdk credentials left at insecure defaults")
	}
	if conf.Merchant.InsecureSkipSign {
		logger.Warn("insecure mode: payloads may be sent unsigned")
	}

	payments := internal.NewPayments(conf)
	payments.SetLogger(internal.NewLogger("payments", conf.IsDebug, database))
	payments.SetDatabase(database)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, database))
	server.SetPaymentsService(payments)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
