package main

import (
	"time"

	"github.com/dhamidi/cppast/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var tcpAddr string
	var wsAddr string
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server for #define directives in .h and .c files.

Speaks LSP over stdio unless --tcp or --websocket is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, lsp.WithPollInterval(poll))
			switch {
			case tcpAddr != "":
				log.Infof("listening on tcp %s", tcpAddr)
				return server.RunTCP(tcpAddr)
			case wsAddr != "":
				log.Infof("listening on websocket %s", wsAddr)
				return server.RunWebSocket(wsAddr)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen on this TCP address instead of stdio")
	cmd.Flags().StringVar(&wsAddr, "websocket", "", "listen on this WebSocket address instead of stdio")
	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "how often to poll the workspace for changes (0 disables)")
	cmd.MarkFlagsMutuallyExclusive("tcp", "websocket")

	return cmd
}
