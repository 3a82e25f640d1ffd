package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/games"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/locale"
	"github.com/skilllab/internal/page"
	"github.com/skilllab/internal/tools"
	"github.com/skilllab/internal/view"
	"github.com/skilllab/web"
)

type viewFlags struct {
	page  string
	id    string
	lang  string
	width int
	seed  int64
}

var (
	renderFlags viewFlags
	resizeFlags viewFlags
	widths      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compose one page and print its HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildView(cmd, renderFlags)
		if err != nil {
			return err
		}
		defer v.Close()

		markup, err := v.HTML()
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
		return err
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Replay a sequence of viewport widths and report each layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		sequence, err := parseWidths(widths)
		if err != nil {
			return err
		}
		v, err := buildView(cmd, resizeFlags)
		if err != nil {
			return err
		}
		defer v.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d\t%s\n", resizeFlags.width, v.Breakpoint())
		for _, width := range sequence {
			v.Resize(width)
			v.Settle()
			fmt.Fprintf(out, "%d\t%s\n", width, v.Breakpoint())
		}
		return nil
	},
}

func init() {
	for _, c := range []struct {
		cmd   *cobra.Command
		flags *viewFlags
	}{{renderCmd, &renderFlags}, {resizeCmd, &resizeFlags}} {
		f := c.cmd.Flags()
		f.StringVar(&c.flags.page, "page", string(catalog.PageHome), "page type: home, games, tools or about")
		f.StringVar(&c.flags.id, "id", "", "selected game or tool id")
		f.StringVar(&c.flags.lang, "lang", "", "language code, ko or en (default resolves from LANG)")
		f.IntVar(&c.flags.width, "width", 0, "viewport width in pixels (default DEFAULT_VIEWPORT_WIDTH)")
		f.Int64Var(&c.flags.seed, "seed", 0, "random seed for game and tool states (0 picks one)")
	}
	resizeCmd.Flags().StringVar(&widths, "widths", "1300,900,600,1300", "comma separated widths to apply in order")
}

func buildView(cmd *cobra.Command, flags viewFlags) (*page.View, error) {
	pageType, ok := catalog.ParsePageType(flags.page)
	if !ok {
		return nil, fmt.Errorf("unknown page %q", flags.page)
	}
	shell, err := web.Shell(string(pageType))
	if err != nil {
		return nil, err
	}
	table, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	source, closer, err := fragmentSource(appConfig, logger)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	width := flags.width
	if width <= 0 {
		width = appConfig.DefaultViewportWidth
	}
	faker := gofakeit.New(flags.seed)
	renderer := view.NewRenderer(table)
	v, err := page.New(page.Config{
		Page:      pageType,
		ID:        flags.id,
		Path:      "/" + string(pageType) + "/" + flags.id,
		Shell:     shell,
		Fragments: source,
		Table:     table,
		Store:     locale.NewMemoryStore(flags.lang),
		Signal:    func() string { return envLanguage() },
		Width:     width,
		Debounce:  appConfig.ResizeDebounce,
		Games:     view.NewGamePanels(games.NewEngine(faker), renderer),
		Tools:     view.NewToolPanels(tools.NewToolbox(faker), renderer),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	v.Init(cmd.Context())
	return v, nil
}

func parseWidths(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		width, err := strconv.Atoi(part)
		if err != nil || width <= 0 {
			return nil, fmt.Errorf("invalid width %q", part)
		}
		out = append(out, width)
	}
	return out, nil
}

// envLanguage 返回 shell 的区域设置，例如 en_US.UTF-8
func envLanguage() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
