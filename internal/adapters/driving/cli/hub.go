package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/connectors/jupyterhub"
)

var hubURL string

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Query the JupyterHub dashboards API",
}

var hubUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Print the current hub user",
	RunE:  runHubUser,
}

func init() {
	hubCmd.PersistentFlags().StringVar(&hubURL, "url", "", "JupyterHub base URL")
	hubCmd.AddCommand(hubUserCmd)
	rootCmd.AddCommand(hubCmd)
}

func runHubUser(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	url := hubURL
	if url == "" {
		url = cfg.GetString("hub.url")
	}
	token := cfg.GetString("hub.token")
	if token == "" {
		token = os.Getenv("JUPYTERHUB_API_TOKEN")
	}

	user, err := jupyterhub.FetchUser(cmd.Context(), url, token)
	if err != nil {
		return err
	}
	cmd.Println(user.Name)
	return nil
}
