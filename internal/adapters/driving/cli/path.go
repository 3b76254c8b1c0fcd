package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cajal/microns-kit/internal/fsutil"
)

var (
	pathTimezone  string
	stampSep      string
	stampLayout   string
	stampSuffix   string
	stampTimeFlag string
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Filesystem path and timestamp helpers",
}

var pathFindCmd = &cobra.Command{
	Use:   "find [name] [root]",
	Short: "List all files named [name] under [root]",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := fsutil.FindAll(args[0], args[1])
		if err != nil {
			return err
		}
		for _, m := range matches {
			cmd.Println(m)
		}
		return nil
	},
}

var pathMtimeCmd = &cobra.Command{
	Use:   "mtime [file]",
	Short: "Print a file's modification time in a timezone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := fsutil.ModTime(args[0], timezoneOrDefault())
		if err != nil {
			return err
		}
		cmd.Println(ts.Format(time.RFC3339))
		return nil
	},
}

var pathStampCmd = &cobra.Command{
	Use:   "stamp [file]",
	Short: "Rename a file, appending a timestamp before the extension",
	Long: `Renames a file so a timestamp sits between the stem and extension,
e.g. scan.csv becomes scan__2024-03-01T10-30-00.csv. The current time is used
unless --time provides an RFC 3339 timestamp.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts := time.Now()
		if stampTimeFlag != "" {
			parsed, err := time.Parse(time.RFC3339, stampTimeFlag)
			if err != nil {
				return err
			}
			ts = parsed
		}

		renamed, err := fsutil.AppendTimestamp(args[0], ts, fsutil.StampOptions{
			Separator: stampSep,
			Layout:    stampLayout,
			Suffix:    stampSuffix,
		})
		if err != nil {
			return err
		}
		cmd.Println(renamed)
		return nil
	},
}

var pathWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and report changes with modification times",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := fsutil.NewWatcher(args[0], timezoneOrDefault())
		if err != nil {
			return err
		}
		defer w.Close()

		go func() {
			for ev := range w.Events() {
				if ev.ModTime.IsZero() {
					cmd.Printf("%s %s\n", ev.Op, ev.Path)
					continue
				}
				cmd.Printf("%s %s (%s)\n", ev.Op, ev.Path, ev.ModTime.Format(time.RFC3339))
			}
		}()
		return w.Run(cmd.Context())
	},
}

func init() {
	pathCmd.PersistentFlags().StringVar(&pathTimezone, "tz", "", "IANA timezone (default from config, else UTC)")
	pathStampCmd.Flags().StringVar(&stampSep, "separator", "", "separator between stem and timestamp")
	pathStampCmd.Flags().StringVar(&stampLayout, "layout", "", "timestamp layout (Go reference time)")
	pathStampCmd.Flags().StringVar(&stampSuffix, "suffix", "", "replacement file extension, including the dot")
	pathStampCmd.Flags().StringVar(&stampTimeFlag, "time", "", "timestamp to append (RFC 3339, default now)")

	pathCmd.AddCommand(pathFindCmd)
	pathCmd.AddCommand(pathMtimeCmd)
	pathCmd.AddCommand(pathStampCmd)
	pathCmd.AddCommand(pathWatchCmd)
	rootCmd.AddCommand(pathCmd)
}

// timezoneOrDefault resolves the timezone from the flag, then config, then
// UTC.
func timezoneOrDefault() string {
	if pathTimezone != "" {
		return pathTimezone
	}
	if cfg, err := openConfig(); err == nil {
		if tz := cfg.GetString("timezone"); tz != "" {
			return tz
		}
	}
	return "UTC"
}
