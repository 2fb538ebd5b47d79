package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yojanadost/yojana/internal/config"
	"github.com/yojanadost/yojana/internal/render"
	"github.com/yojanadost/yojana/internal/transport/httpbot"
	openaiChat "github.com/yojanadost/yojana/internal/transport/openai"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
)

const prompt = "> "

func newChatCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the scheme assistant",
		Long: `Ask the scheme assistant a question. With no message, reads questions
from stdin until EOF or "exit".`,
		Example: `  yojanactl chat "schemes for farmers"
  yojanactl chat --endpoint http://localhost:8000/chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			agentOpts := []chatuc.Option{chatuc.WithLogger(opts.logger)}
			if remote := opts.responder(); remote != nil {
				agentOpts = append(agentOpts, chatuc.WithRemote(remote))
			}
			agent := chatuc.NewAgent(repo, agentOpts...)
			r := render.New(cmd.OutOrStdout())

			if len(args) > 0 {
				return r.Reply(agent.Respond(cmd.Context(), strings.Join(args, " ")))
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, prompt)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "exit" || line == "quit" {
					return nil
				}
				if err := r.Reply(agent.Respond(cmd.Context(), line)); err != nil {
					return err
				}
				fmt.Fprint(out, "\n"+prompt)
			}
			fmt.Fprintln(out)
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "chatbot endpoint accepting {\"message\"} (overrides config)")
	return cmd
}

// responder picks the remote responder: --endpoint first, then the config chat section.
func (o *options) responder() chatuc.Responder {
	if o.endpoint != "" {
		return httpbot.New(o.endpoint, 20*time.Second)
	}
	if o.cfg == nil {
		return nil
	}

	c := o.cfg.Chat
	timeout := time.Duration(c.TimeoutSec) * time.Second
	switch c.Provider {
	case config.ChatProviderOpenAI:
		return openaiChat.NewResponder(&openaiChat.Config{
			APIKey:       c.APIKey,
			BaseURL:      c.BaseURL,
			Model:        c.Model,
			SystemPrompt: c.SystemPrompt,
			Timeout:      timeout,
			Logger:       o.logger,
		})
	case config.ChatProviderHTTP:
		return httpbot.New(c.EndpointURL, timeout)
	default:
		return nil
	}
}
