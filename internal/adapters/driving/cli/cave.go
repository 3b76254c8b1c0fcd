package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/connectors/cave"
)

var (
	caveDatastack string
	caveServer    string
)

var caveCmd = &cobra.Command{
	Use:   "cave",
	Short: "Query a CAVE annotation deployment",
	Long: `Queries a CAVE (Connectome Annotation Versioning Engine) deployment
for datastack metadata and materialization versions.

The datastack and server can be set once with:
  micronskit config set cave.datastack minnie65_phase3_v1
  micronskit config set cave.server https://global.daf-apis.com`,
}

var caveInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print datastack metadata",
	RunE:  runCaveInfo,
}

var caveVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List materialization versions, newest first",
	RunE:  runCaveVersions,
}

var cavePinCmd = &cobra.Command{
	Use:   "pin [version]",
	Short: "Verify a materialization version exists (latest when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCavePin,
}

func init() {
	caveCmd.PersistentFlags().StringVar(&caveDatastack, "datastack", "", "datastack name")
	caveCmd.PersistentFlags().StringVar(&caveServer, "server", "", "CAVE server URL")
	caveCmd.AddCommand(caveInfoCmd)
	caveCmd.AddCommand(caveVersionsCmd)
	caveCmd.AddCommand(cavePinCmd)
	rootCmd.AddCommand(caveCmd)
}

// newCaveClient builds a client from flags, falling back to config values.
func newCaveClient() (*cave.Client, error) {
	cfg, err := openConfig()
	if err != nil {
		return nil, err
	}

	datastack := caveDatastack
	if datastack == "" {
		datastack = cfg.GetString("cave.datastack")
	}
	server := caveServer
	if server == "" {
		server = cfg.GetString("cave.server")
	}

	var opts []cave.Option
	if token := cfg.GetString("cave.token"); token != "" {
		opts = append(opts, cave.WithToken(token))
	}
	return cave.NewClient(server, datastack, opts...)
}

func runCaveInfo(cmd *cobra.Command, _ []string) error {
	client, err := newCaveClient()
	if err != nil {
		return err
	}

	info, err := client.DatastackInfo(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("datastack: %s\n", client.Datastack())
	cmd.Printf("description: %s\n", info.Description)
	cmd.Printf("local server: %s\n", info.LocalServer)
	cmd.Printf("aligned volume: %s\n", info.AlignedVolume.Name)
	cmd.Printf("image source: %s\n", info.AlignedVolume.ImageSource)
	cmd.Printf("segmentation source: %s\n", info.SegmentationSource)
	if info.SynapseTable != "" {
		cmd.Printf("synapse table: %s\n", info.SynapseTable)
	}
	if info.SomaTable != "" {
		cmd.Printf("soma table: %s\n", info.SomaTable)
	}
	return nil
}

func runCaveVersions(cmd *cobra.Command, _ []string) error {
	client, err := newCaveClient()
	if err != nil {
		return err
	}

	versions, err := client.MaterializationVersions(cmd.Context())
	if err != nil {
		return err
	}
	for _, v := range versions {
		cmd.Println(v)
	}
	return nil
}

func runCavePin(cmd *cobra.Command, args []string) error {
	client, err := newCaveClient()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		ver, err := client.PinLatest(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("pinned %s to latest materialization version %d\n", client.Datastack(), ver)
		return nil
	}

	ver, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	if err := client.PinVersion(cmd.Context(), ver); err != nil {
		return err
	}
	cmd.Printf("pinned %s to materialization version %d\n", client.Datastack(), ver)
	return nil
}
