// Command docxconv converts Word documents to HTML or plain text.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsawler/docxconv"
	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/format"
)

// CLI defines the command-line interface.
var CLI struct {
	Config  string `help:"YAML configuration file." type:"path" short:"c"`
	Verbose bool   `help:"Log conversion anomalies to stderr." short:"v"`

	HTML HTMLCmd `cmd:"" name:"html" help:"Convert a .docx file to HTML."`
	Text TextCmd `cmd:"" name:"text" help:"Convert a .docx file to plain text."`
}

// HTMLCmd converts a document to HTML.
type HTMLCmd struct {
	File         string           `arg:"" type:"existingfile" help:"Input .docx file."`
	Output       string           `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Semantic     bool             `help:"Use h1-h6, strong, em and th elements."`
	Fragment     bool             `help:"Emit body content only, without the document shell."`
	StyleMode    config.StyleMode `help:"CSS emission: none, inline or classes." placeholder:"MODE"`
	Title        string           `help:"Document title. Defaults to the core properties title."`
	Lang         string           `help:"Language tag for the html element." placeholder:"TAG"`
	Print        bool             `help:"Include print media rules."`
	NoResponsive bool             `help:"Omit the viewport meta tag and responsive rules."`
}

// Run executes the html command.
func (cmd *HTMLCmd) Run() error {
	if err := checkInput(cmd.File); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Semantic {
		cfg.SemanticTags = true
	}
	if cmd.Fragment {
		cfg.FragmentOnly = true
	}
	if cmd.StyleMode != "" {
		cfg.StyleMode = cmd.StyleMode
	}
	if cmd.Title != "" {
		cfg.Title = cmd.Title
	}
	if cmd.Lang != "" {
		cfg.Language = cmd.Lang
	}
	if cmd.Print {
		cfg.IncludePrintStyles = true
	}
	if cmd.NoResponsive {
		cfg.Responsive = false
	}

	out, err := docxconv.Open(cmd.File).Config(cfg).Logger(newLogger()).HTML()
	if err != nil {
		return err
	}
	return writeOutput(cmd.Output, out)
}

// TextCmd converts a document to plain text.
type TextCmd struct {
	File      string           `arg:"" type:"existingfile" help:"Input .docx file."`
	Output    string           `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Markdown  bool             `help:"Decorate headings, emphasis and links with markdown."`
	TableMode config.TableMode `help:"Table drawing: ascii, tabs, plain or auto." placeholder:"MODE"`
	Separator *string          `help:"Text placed between blocks. Escapes such as \\n are expanded."`
}

// Run executes the text command.
func (cmd *TextCmd) Run() error {
	if err := checkInput(cmd.File); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Markdown {
		cfg.TextFormatting = config.FormatMarkdown
	}
	if cmd.TableMode != "" {
		cfg.TableMode = cmd.TableMode
	}
	if cmd.Separator != nil {
		cfg.ParagraphSeparator = unescape(*cmd.Separator)
	}

	out, err := docxconv.Open(cmd.File).Config(cfg).Logger(newLogger()).Text()
	if err != nil {
		return err
	}
	return writeOutput(cmd.Output, out+"\n")
}

// checkInput rejects files whose extension names another known format.
// Unknown extensions are left to content sniffing.
func checkInput(path string) error {
	switch f := format.Detect(path); f {
	case format.DOCX, format.Unknown:
		return nil
	default:
		return fmt.Errorf("%s looks like a %s file, not a Word document", path, f)
	}
}

func loadConfig() (config.Config, error) {
	if CLI.Config == "" {
		return config.Default(), nil
	}
	return config.Load(CLI.Config)
}

func newLogger() *slog.Logger {
	if !CLI.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeOutput(path, content string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// unescape expands \n, \t and \\ so separators can be given on a shell line.
func unescape(s string) string {
	out := make([]rune, 0, len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' || i+1 == len(rs) {
			out = append(out, rs[i])
			continue
		}
		i++
		switch rs[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, '\\', rs[i])
		}
	}
	return string(out)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docxconv"),
		kong.Description("Convert Word documents to HTML or plain text"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
