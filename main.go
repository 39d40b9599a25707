// repoviz is a terminal GitHub repository visualizer.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/repoviz-cli/internal/connectors/github"
	"github.com/custodia-labs/repoviz-cli/internal/core/services"
)

func main() {
	store, err := file.NewCredentialsStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "repoviz: opening credentials store: %v\n", err)
		os.Exit(1)
	}

	sessionService := services.NewSessionService(store, github.NewGateway)
	visualizerService := services.NewVisualizerService(sessionService)
	contentService := services.NewContentService(sessionService)
	assistantService := services.NewAssistantService(store, gemini.NewModel, contentService)

	cli.SetConfig(&cli.Config{
		SessionService:    sessionService,
		VisualizerService: visualizerService,
		ContentService:    contentService,
		AssistantService:  assistantService,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
