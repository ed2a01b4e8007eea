package main

import (
	"github.com/redexp/kaiserhof/providers"
	"github.com/redexp/kaiserhof/store"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func init() {
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Int("web-socket", 0, "Start websocket server on port")
	pflag.String("db", "kaiserhof.db", "Database DSN")
	pflag.String("db-driver", store.DefaultDriver, "Database driver, "+store.DefaultDriver+" or "+store.CgoDriver+" (cgo builds)")
	pflag.Int("log-verbosity", 0, "Log verbosity, 0 is errors only")
	pflag.String("log-file", "", "Log to file instead of stderr")
	pflag.Parse()
}

func main() {
	err := run()

	if err != nil {
		panic(err)
	}
}

func run() error {
	flags := pflag.CommandLine

	verbosity, _ := flags.GetInt("log-verbosity")
	logFile, _ := flags.GetString("log-file")
	dsn, _ := flags.GetString("db")
	driver, _ := flags.GetString("db-driver")

	var path *string

	if logFile != "" {
		path = &logFile
	}

	commonlog.Configure(verbosity, path)

	db, err := store.Open(driver, dsn)

	if err != nil {
		return err
	}

	defer db.Close()

	return providers.StartServer(providers.NewController(db))
}
