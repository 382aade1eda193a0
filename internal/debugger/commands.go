package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// CommandKind discriminates REPL commands.
type CommandKind int

const (
	CmdStep CommandKind = iota
	CmdContinue
	CmdVisualize
	CmdInspect
	CmdBreak
	CmdList
	CmdClear
	CmdHelp
	CmdQuit
)

// Command is a parsed REPL command.
type Command struct {
	Kind       CommandKind
	Target     string      // CmdInspect: what to inspect
	Breakpoint *Breakpoint // CmdBreak: breakpoint to add
	Index      int         // CmdClear: breakpoint index
}

// commandLine is the surface grammar: a command word followed by
// whitespace-separated arguments.
type commandLine struct {
	Name string   `parser:"@Ident"`
	Args []string `parser:"( @Ident | @Int )*"`
}

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_?][a-zA-Z0-9_?]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var commandParser = participle.MustBuild[commandLine](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace"),
)

// ParseCommand parses one line of REPL input. An empty line is a step.
func ParseCommand(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Kind: CmdStep}, nil
	}

	line, err := commandParser.ParseString("", input)
	if err != nil {
		return Command{}, fmt.Errorf("unreadable command %q, type 'help' for commands", input)
	}

	switch strings.ToLower(line.Name) {
	case "step", "s":
		return Command{Kind: CmdStep}, nil
	case "continue", "c":
		return Command{Kind: CmdContinue}, nil
	case "visualize", "v":
		return Command{Kind: CmdVisualize}, nil
	case "inspect", "i":
		if len(line.Args) == 0 {
			return Command{}, fmt.Errorf("inspect requires a target (python, c, unified, rust)")
		}
		return Command{Kind: CmdInspect, Target: strings.Join(line.Args, " ")}, nil
	case "break", "b":
		if len(line.Args) == 0 {
			return Command{}, fmt.Errorf("break requires a breakpoint type (boundary, phase, function)")
		}
		bp, err := parseBreakpoint(line.Args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdBreak, Breakpoint: bp}, nil
	case "list", "l":
		return Command{Kind: CmdList}, nil
	case "clear":
		if len(line.Args) == 0 {
			return Command{}, fmt.Errorf("clear requires a breakpoint number")
		}
		idx, err := strconv.Atoi(line.Args[0])
		if err != nil {
			return Command{}, fmt.Errorf("invalid breakpoint number %q", line.Args[0])
		}
		return Command{Kind: CmdClear, Index: idx}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q, type 'help' for commands", line.Name)
	}
}

func parseBreakpoint(args []string) (*Breakpoint, error) {
	switch strings.ToLower(args[0]) {
	case "boundary":
		return &Breakpoint{Kind: BreakBoundary}, nil
	case "phase":
		if len(args) < 2 {
			return nil, fmt.Errorf("break phase requires a phase name")
		}
		return &Breakpoint{Kind: BreakPhase, Phase: strings.Join(args[1:], " ")}, nil
	case "function", "fn":
		if len(args) < 2 {
			return nil, fmt.Errorf("break function requires a function name")
		}
		return &Breakpoint{Kind: BreakFunction, Function: args[1]}, nil
	default:
		return nil, fmt.Errorf("unknown breakpoint type %q", args[0])
	}
}
