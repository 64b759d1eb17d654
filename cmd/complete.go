package cmd

import (
	"flag"

	"github.com/etnz/xirr/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands of c and their flags for shell completion.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if cmd.Name() == "topic" {
			sub.Args = complete.PredictFunc(func(string) []string { return topicNames() })
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// flagPredictors returns a completion predictor for every flag of fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case f.Name == "file" || f.Name == "o":
			flags[f.Name] = predict.Files("*.json")
		case isBoolFlag(f):
			flags[f.Name] = predict.Nothing
		case f.Name == "log-level":
			flags[f.Name] = predict.Set{"debug", "info", "warn", "error"}
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// topicNames lists the arguments accepted by the topic command.
func topicNames() []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append([]string{"readme", "*"}, topics...)
}
