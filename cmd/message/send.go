package message

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/spf13/cobra"
)

var (
	flagSender        int
	flagReceiver      int
	flagContent       string
	flagReplyTo       int
	flagMediaURL      string
	flagMediaType     string
	flagMediaPublicID string
	flagMediaFormat   string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Create a message (content from --content or stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSender == 0 || flagReceiver == 0 {
			return errors.New("--from and --to user ids are required")
		}
		content := flagContent
		if content == "" {
			// Read stdin if piped; avoid blocking on a TTY
			if fi, err := os.Stdin.Stat(); err == nil && (fi.Mode()&os.ModeCharDevice) == 0 {
				b := &strings.Builder{}
				reader := bufio.NewReader(os.Stdin)
				for {
					chunk, err := reader.ReadString('\n')
					b.WriteString(chunk)
					if err != nil {
						if err == io.EOF {
							break
						}
						return fmt.Errorf("read stdin: %w", err)
					}
				}
				content = strings.TrimRight(b.String(), "\n")
			}
		}
		if content == "" {
			return errors.New("empty message content")
		}

		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		var media *pgdao.MediaAttachment
		if flagMediaURL != "" {
			media = &pgdao.MediaAttachment{
				URL:      flagMediaURL,
				Type:     flagMediaType,
				PublicID: flagMediaPublicID,
				Format:   flagMediaFormat,
			}
		}
		id, err := pgdao.CreateMessage(ctx, pool, flagSender, flagReceiver, content, media, flagReplyTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d\n", id)
		return nil
	},
}

func init() {
	sendCmd.Flags().IntVar(&flagSender, "from", 0, "Sender user id")
	sendCmd.Flags().IntVar(&flagReceiver, "to", 0, "Receiver user id")
	sendCmd.Flags().StringVar(&flagContent, "content", "", "Message content (stdin when omitted)")
	sendCmd.Flags().IntVar(&flagReplyTo, "reply-to", 0, "Message id this message replies to")
	sendCmd.Flags().StringVar(&flagMediaURL, "media-url", "", "Media URL")
	sendCmd.Flags().StringVar(&flagMediaType, "media-type", "", "Media type")
	sendCmd.Flags().StringVar(&flagMediaPublicID, "media-public-id", "", "Provider-assigned media id")
	sendCmd.Flags().StringVar(&flagMediaFormat, "media-format", "", "Media format")
}
