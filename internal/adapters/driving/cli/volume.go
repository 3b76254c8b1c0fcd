package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/connectors/cloudvolume"
)

var (
	volumeMip  int
	volumeJSON bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Inspect precomputed volumes",
}

var volumeStatsCmd = &cobra.Command{
	Use:   "stats [cv-path]",
	Short: "Print bounding box statistics per mip level",
	Long: `Fetches the info manifest of a precomputed volume and prints the
resolution, bounding box, center point, and voxel offset per mip level.

Examples:
  micronskit volume stats https://bossdb-open-data.s3.amazonaws.com/iarpa_microns/minnie/minnie65/em
  micronskit volume stats gs://iarpa_microns/minnie/minnie65/em --mip 2`,
	Args: cobra.ExactArgs(1),
	RunE: runVolumeStats,
}

func init() {
	volumeStatsCmd.Flags().IntVar(&volumeMip, "mip", -1, "mip level to report (default: all)")
	volumeStatsCmd.Flags().BoolVar(&volumeJSON, "json", false, "output statistics as JSON")
	volumeCmd.AddCommand(volumeStatsCmd)
	rootCmd.AddCommand(volumeCmd)
}

func runVolumeStats(cmd *cobra.Command, args []string) error {
	client := cloudvolume.NewClient()
	info, err := client.FetchInfo(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var stats []cloudvolume.MipStats
	if volumeMip >= 0 {
		s, err := info.Stats(volumeMip)
		if err != nil {
			return err
		}
		stats = []cloudvolume.MipStats{s}
	} else {
		stats = info.AllStats()
	}

	if volumeJSON {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("type: %s, data type: %s, channels: %d\n",
		info.Type, info.DataType, info.NumChannels)
	for _, s := range stats {
		cmd.Printf("mip %d: res %v, min %v, max %v, center %v, offset %v\n",
			s.Mip, s.Resolution, s.MinPt, s.MaxPt, s.CtrPt, s.VoxelOffset)
	}
	return nil
}
