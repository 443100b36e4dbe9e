package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mydoc/internal/domain"
)

// errOutcomeFailed is returned once a failure outcome has already been shown.
var errOutcomeFailed = errors.New("operation failed")

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mydoc",
		Short:         "Browse and manage documents on a document service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				return a.shell().Run(cmd.Context(), os.Stdin)
			})
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default mydoc.yaml when present)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "document service base URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE:  root.RunE,
		},
		newListCommand(opts, false),
		newListCommand(opts, true),
		newBinCommand(opts),
		newSearchCommand(opts),
		newMkdirCommand(opts),
		newUploadCommand(opts),
		newRemoveCommand(opts),
		newRestoreCommand(opts),
		newOpenCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func withApp(opts *rootOptions, fn func(a *app) error) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// render shows the outcome and turns a failure into the command's error.
func render(a *app, o domain.Outcome) error {
	a.out.Outcome(o)
	if !o.Succeeded() {
		return errOutcomeFailed
	}
	return nil
}

// splitPath separates "a/b/name" into the folder path "a/b" and "name".
func splitPath(p string) (dir, name string) {
	p = strings.Trim(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i], p[i+1:]
	}
	return "", p
}

// find navigates to the folder holding path and resolves its last element.
func find(ctx context.Context, a *app, path string) (domain.Document, error) {
	dir, name := splitPath(path)
	if err := a.svc.Listing.NavigatePath(ctx, dir); err != nil {
		return domain.Document{}, err
	}
	return a.svc.Listing.Find(name)
}

func newListCommand(opts *rootOptions, tree bool) *cobra.Command {
	use, short := "ls [folder-path]", "List a folder"
	if tree {
		use, short = "tree [folder-path]", "Show a folder as a tree"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				if err := a.svc.Listing.NavigatePath(cmd.Context(), path); err != nil {
					return err
				}
				if tree {
					a.out.Tree(a.state.Snapshot())
				} else {
					a.out.Listing(a.state.Snapshot())
				}
				return nil
			})
		},
	}
}

func newBinCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bin",
		Short: "List the Bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if err := a.svc.Listing.Bin(cmd.Context()); err != nil {
					return err
				}
				a.out.Listing(a.state.Snapshot())
				return nil
			})
		},
	}
}

func newSearchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find documents whose title contains text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if err := a.svc.Listing.Search(cmd.Context(), strings.Join(args, " ")); err != nil {
					return err
				}
				a.out.Listing(a.state.Snapshot())
				return nil
			})
		},
	}
}

func newMkdirCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <folder-path>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				dir, name := splitPath(args[0])
				if err := a.svc.Listing.NavigatePath(cmd.Context(), dir); err != nil {
					return err
				}
				return render(a, a.svc.Folders.CreateFolder(cmd.Context(), name))
			})
		},
	}
}

func newUploadCommand(opts *rootOptions) *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "upload <file> [folder-path]",
		Short: "Upload a local file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				dest := ""
				if len(args) == 2 {
					dest = args[1]
				}
				if err := a.svc.Listing.NavigatePath(cmd.Context(), dest); err != nil {
					return err
				}

				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				info, err := f.Stat()
				if err != nil {
					return err
				}
				upload := domain.FileUpload{
					Name:     filepath.Base(args[0]),
					MIMEType: mimeType,
					Size:     info.Size(),
					Content:  f,
				}
				return render(a, a.svc.Files.CreateFile(cmd.Context(), upload, nil))
			})
		},
	}
	cmd.Flags().StringVar(&mimeType, "type", "", "content type (guessed from the extension by default)")
	return cmd
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Move a folder or file to the Bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				doc, err := find(cmd.Context(), a, args[0])
				if err != nil {
					return err
				}
				return render(a, a.svc.Trash.Delete(cmd.Context(), doc))
			})
		},
	}
}

func newRestoreCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <title|#id>",
		Short: "Restore an item from the Bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if err := a.svc.Listing.Bin(cmd.Context()); err != nil {
					return err
				}
				doc, err := a.svc.Listing.Find(args[0])
				if err != nil {
					return err
				}
				return render(a, a.svc.Trash.Restore(cmd.Context(), doc))
			})
		},
	}
}

func newOpenCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				doc, err := find(cmd.Context(), a, args[0])
				if err != nil {
					return err
				}
				if output == "-" || doc.IsFolder() {
					if o := a.svc.Files.Open(cmd.Context(), doc, cmd.OutOrStdout()); !o.Succeeded() {
						return render(a, o)
					}
					return nil
				}
				if output == "" {
					if output, err = doc.LocalName(); err != nil {
						return err
					}
				}
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				o := a.svc.Files.Open(cmd.Context(), doc, f)
				if err := f.Close(); err != nil && o.Succeeded() {
					return err
				}
				if !o.Succeeded() {
					os.Remove(output)
				}
				return render(a, o)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `destination file, "-" for stdout (default: the file's name)`)
	return cmd
}
