package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"rotterDB/internal/engine"
	"rotterDB/internal/sql"
)

const prompt = "SQL> "

// Executor runs commands. *engine.DBEngine satisfies it.
type Executor interface {
	Execute(query string) engine.Result
	ListTables() ([]string, error)
}

// Options configures a REPL.
type Options struct {
	// HistoryFile stores entered lines across sessions; empty disables it.
	HistoryFile string
	// Format is the output format passed to Render.
	Format string
	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// REPL is the interactive console.
type REPL struct {
	exec   Executor
	opts   Options
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

// NewREPL creates a console over exec.
func NewREPL(exec Executor, opts Options) *REPL {
	r := &REPL{exec: exec, opts: opts, out: opts.Out, errOut: opts.Err, logger: opts.Logger}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.opts.Format == "" {
		r.opts.Format = FormatTable
	}
	return r
}

// Run reads commands until quit or end of input.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     r.opts.HistoryFile,
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          r.out,
		Stderr:          r.errOut,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.banner()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C drops the current line only
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if r.HandleLine(line) {
			break
		}
	}

	_, _ = fmt.Fprintln(r.out, "Bye")
	return nil
}

// HandleLine processes one input line and reports whether the session
// should end.
func (r *REPL) HandleLine(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch strings.ToLower(line) {
	case "quit", "exit", ".quit", ".exit":
		return true
	case ".help":
		r.help()
		return false
	case ".tables":
		r.tables()
		return false
	}

	if strings.HasPrefix(line, ".") {
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", line)
		return false
	}

	res := r.exec.Execute(line)
	if err := Render(r.out, res, r.opts.Format); err != nil {
		r.logger.Warn("render failed", "error", err)
		_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
	}
	return false
}

func (r *REPL) banner() {
	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintln(r.out, rule)
	_, _ = fmt.Fprintln(r.out, "ROTTERDB - LOCAL CONSOLE")
	_, _ = fmt.Fprintln(r.out, rule)
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out, "Examples:")
	_, _ = fmt.Fprintln(r.out, "  CREATE TABLE users (name TEXT, age INT)")
	_, _ = fmt.Fprintln(r.out, "  INSERT INTO users VALUES ('Ann', 30)")
	_, _ = fmt.Fprintln(r.out, "  SELECT * FROM users")
	_, _ = fmt.Fprintln(r.out, "  DESCRIBE users")
	_, _ = fmt.Fprintln(r.out, "Type .help for commands, quit to exit")
	_, _ = fmt.Fprintln(r.out)
}

func (r *REPL) help() {
	help := `
Statements:
  CREATE TABLE <name> (<col> <TYPE>, ...)   TYPE is INT, FLOAT, TEXT, BOOL or SERIAL
  DROP TABLE <name>
  INSERT INTO <name> VALUES (<v>, ...)      values for every non-SERIAL column
  SELECT * | <col>, ... FROM <name>
  DESCRIBE <name>

Commands:
  .help           Show this help message
  .tables         List all tables
  quit / exit     Leave the console
`
	_, _ = fmt.Fprintln(r.out, help)
}

func (r *REPL) tables() {
	names, err := r.exec.ListTables()
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintln(r.out, "(no tables)")
		return
	}
	for _, n := range names {
		_, _ = fmt.Fprintln(r.out, n)
	}
}

// completer completes statement keywords, dot-commands and, after a
// keyword that takes one, the current table names.
func (r *REPL) completer() *readline.PrefixCompleter {
	tableNames := func(string) []string {
		names, err := r.exec.ListTables()
		if err != nil {
			return nil
		}
		return names
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(sql.Verbs)+4)
	for _, verb := range sql.Verbs {
		switch verb {
		case "CREATE":
			items = append(items, readline.PcItem("CREATE TABLE"))
		case "DROP":
			items = append(items, readline.PcItem("DROP TABLE", readline.PcItemDynamic(tableNames)))
		case "INSERT":
			items = append(items, readline.PcItem("INSERT INTO", readline.PcItemDynamic(tableNames)))
		case "SELECT":
			items = append(items, readline.PcItem("SELECT * FROM", readline.PcItemDynamic(tableNames)))
		default:
			items = append(items, readline.PcItem(verb, readline.PcItemDynamic(tableNames)))
		}
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
