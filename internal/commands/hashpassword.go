package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/FlintShadey/huddleuptime/internal/auth"
	"github.com/FlintShadey/huddleuptime/internal/config"
)

// HashPassword handles the hash-password subcommand. It prompts for a
// username and password and prints the basic_auth block to paste into the
// YAML config, or writes it into the file given with -write.
func HashPassword(args []string) int {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	write := fs.String("write", "", "Store the credentials in this config file instead of printing them")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: api hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates an Argon2id basic_auth entry for write endpoints.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	in := bufio.NewReader(os.Stdin)
	fmt.Fprint(os.Stderr, "Enter username: ")
	username, err := readLine(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
		return 1
	}
	if username == "" {
		fmt.Fprintln(os.Stderr, "Username cannot be empty")
		return 1
	}

	password, err := readPassword(in, "Enter password:   ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return 1
	}
	confirm, err := readPassword(in, "Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password confirmation: %v\n", err)
		return 1
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "Password cannot be empty")
		return 1
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Passwords do not match")
		return 1
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	creds := config.BasicAuthConfig{Username: username, PasswordHash: hash}

	if *write != "" {
		if err := storeCredentials(*write, creds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "basic_auth written to %s\n", *write)
		return 0
	}

	if err := printCredentials(os.Stdout, creds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func storeCredentials(path string, creds config.BasicAuthConfig) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.BasicAuth = &creds
	return config.Save(path, cfg)
}

func printCredentials(w io.Writer, creds config.BasicAuthConfig) error {
	out, err := yaml.Marshal(map[string]config.BasicAuthConfig{"basic_auth": creds})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// readPassword reads without echo from a terminal and falls back to a plain
// line read when stdin is piped.
func readPassword(in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(in)
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
