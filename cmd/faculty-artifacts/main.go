// Package main provides a CLI for Faculty datasets artifact repositories.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/facultyai/mlflow-faculty-go/pkg/artifact/facultydatasets"
	"github.com/facultyai/mlflow-faculty-go/pkg/datasets"
	"github.com/facultyai/mlflow-faculty-go/pkg/profile"
	"github.com/facultyai/mlflow-faculty-go/pkg/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	uri         string
	profilePath string
	recursive   bool
	args        []string
}

func parseFlags() options {
	opts := options{}
	flag.StringVar(&opts.uri, "uri", "", "Artifact root URI (faculty-datasets:<project-id>/<path>)")
	flag.StringVar(&opts.profilePath, "profile", "", "Path to a Faculty profile file")
	flag.BoolVar(&opts.recursive, "recursive", false, "List artifacts recursively")
	flag.Usage = usage
	flag.Parse()
	opts.args = flag.Args()
	return opts
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: faculty-artifacts -uri <uri> [flags] <command> [args]

Commands:
  log <local-file> [artifact-path]   Upload a single file
  log-dir <local-dir> [artifact-path] Upload a directory tree
  list [path]                        List artifacts
  get <remote-path> <local-path>     Download a file

Flags:
`)
	flag.PrintDefaults()
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func run() error {
	opts := parseFlags()
	if opts.uri == "" || len(opts.args) == 0 {
		usage()
		return fmt.Errorf("a -uri and a command are required")
	}

	repo, err := createRepository(opts)
	if err != nil {
		return err
	}

	ctx := setupSignalHandler()
	return dispatch(ctx, repo, opts)
}

func createRepository(opts options) (*facultydatasets.Repository, error) {
	var prof *profile.Profile
	var err error
	if opts.profilePath != "" {
		prof, err = profile.Load(opts.profilePath)
	} else {
		prof, err = profile.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	tokens, err := session.NewClientCredentialsSource(session.Config{
		TokenURL:     prof.TokenURL(),
		ClientID:     prof.ClientID,
		ClientSecret: prof.ClientSecret,
	})
	if err != nil {
		return nil, err
	}

	client, err := datasets.New(datasets.Config{
		Domain:   prof.Domain,
		Protocol: prof.Protocol,
	}, tokens)
	if err != nil {
		return nil, err
	}

	return facultydatasets.New(opts.uri, client, client)
}

func dispatch(ctx context.Context, repo *facultydatasets.Repository, opts options) error {
	cmd, args := opts.args[0], opts.args[1:]

	switch cmd {
	case "log":
		if len(args) < 1 {
			return fmt.Errorf("log requires a local file")
		}
		return repo.LogArtifact(ctx, args[0], argOr(args, 1, ""))
	case "log-dir":
		if len(args) < 1 {
			return fmt.Errorf("log-dir requires a local directory")
		}
		return repo.LogArtifacts(ctx, args[0], argOr(args, 1, ""))
	case "list":
		infos, err := repo.ListArtifacts(ctx, argOr(args, 0, ""), opts.recursive)
		if err != nil {
			return err
		}
		for _, info := range infos {
			if info.IsDir {
				fmt.Printf("%12s  %s/\n", "-", info.Path)
			} else {
				fmt.Printf("%12d  %s\n", info.Size, info.Path)
			}
		}
		return nil
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get requires a remote path and a local path")
		}
		return repo.DownloadFile(ctx, args[0], args[1])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}
