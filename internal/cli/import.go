package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/vcf"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import friends from a vCard file or CardDAV URL",
		Long: "Read vCards from a local .vcf file or a web address and create a friend\n" +
			"for each new contact. Names already in the database are skipped. A\n" +
			"password passed with --pass is stored in the system keyring and reused\n" +
			"on later imports for the same user.",
		Run: runImport,
	}

	cmd.Flags().String("file", "", "Path to a local .vcf file")
	cmd.Flags().String("url", "", "CardDAV or WebDAV address serving vCards")
	cmd.Flags().String("user", "", "HTTP Basic Auth user for --url")
	cmd.Flags().String("pass", "", "HTTP Basic Auth password for --url")
	cmd.Flags().IntP("interval", "i", 0, "Reminder interval for imported friends")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, _ []string) {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")
	user, _ := cmd.Flags().GetString("user")
	pass, _ := cmd.Flags().GetString("pass")
	interval, _ := cmd.Flags().GetInt("interval")

	if user != "" {
		switch {
		case pass != "":
			if err := keyring.Set(config.KeyringService, user, pass); err != nil {
				exitErr("store credentials", err)
			}
		default:
			stored, err := keyring.Get(config.KeyringService, user)
			if err != nil {
				exitErr("load credentials", err)
			}
			pass = stored
		}
	}

	src := vcf.Source{
		LocalPath: file,
		WebURL:    url,
		WebUser:   user,
		WebPass:   pass,
	}

	ctx := cmd.Context()
	r, err := vcf.Open(ctx, src, vcf.NewHTTPFetcher())
	if err != nil {
		exitErr("import", err)
	}
	defer r.Close()

	cards, err := vcf.Parse(ctx, r)
	if err != nil {
		exitErr("import", err)
	}

	tracker, s, _ := openTracker()
	defer s.Close()

	res, err := tracker.Import(ctx, cards, interval)
	if err != nil {
		exitErr("import", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(res)
		return
	}
	fmt.Printf("Imported %d friends, skipped %d\n", res.Added, res.Skipped)
}
