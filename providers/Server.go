package providers

import (
	"fmt"

	"github.com/spf13/pflag"
	serv "github.com/tliron/glsp/server"
)

const ServerName = "kaiserhof"

func StartServer(c *Controller) error {
	webSocketPort, err := pflag.CommandLine.GetInt("web-socket")

	if err != nil {
		return err
	}

	server := CreateServer(c)

	if webSocketPort > 0 {
		return server.RunWebSocket(fmt.Sprintf("127.0.0.1:%d", webSocketPort))
	}

	return server.RunStdio()
}

func CreateServer(c *Controller) *serv.Server {
	return serv.NewServer(CreateRequestHandler(c), ServerName, false)
}
