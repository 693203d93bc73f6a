package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/w0rmh013/PassVault/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "new":
		runNew(os.Args[2:])
	case "add":
		runAdd(os.Args[2:])
	case "edit":
		runEdit(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "show":
		runShow(os.Args[2:])
	case "password":
		runPassword(os.Args[2:])
	case "ls":
		runLs(os.Args[2:])
	case "dump":
		runDump(os.Args[2:])
	case "passwd":
		runPasswd(os.Args[2:])
	case "forget":
		runForget(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// vaultFlags registers the flags shared by every command that touches
// a vault file and returns pointers to their values.
func vaultFlags(fs *flag.FlagSet) (file *string, useKeyring *bool) {
	file = fs.String("f", "", "Path to vault file (default: $PVLTFILE)")
	useKeyring = fs.Bool("keyring", false, "Use the OS keyring for the master password")
	return file, useKeyring
}

func resolvePathOrExit(flagPath string) string {
	path, err := cmd.ResolveVaultPath(flagPath)
	if err != nil {
		cmd.HandleError(err)
	}
	return path
}

func runNew(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.New(resolvePathOrExit(*file), *useKeyring)
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	promptPassword := fs.Bool("p", false, "Prompt for the entry password instead of passing password=...")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault add [-f <file>] [-p] <id> [name=value ...]")
		os.Exit(1)
	}
	props, err := cmd.ParseProperties(fs.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Add(resolvePathOrExit(*file), fs.Arg(0), props, *promptPassword, *useKeyring)
}

func runEdit(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	promptPassword := fs.Bool("p", false, "Prompt for the entry password instead of passing password=...")
	yes := fs.Bool("y", false, "Overwrite without confirmation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault edit [-f <file>] [-p] [-y] <id> [name=value ...]")
		os.Exit(1)
	}
	props, err := cmd.ParseProperties(fs.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Edit(resolvePathOrExit(*file), fs.Arg(0), props, *yes, *promptPassword, *useKeyring)
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	yes := fs.Bool("y", false, "Delete without confirmation")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault rm [-f <file>] [-y] <id>")
		os.Exit(1)
	}

	cmd.Remove(resolvePathOrExit(*file), fs.Arg(0), *yes, *useKeyring)
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	reveal := fs.Bool("reveal", false, "Show the password in plaintext (recorded as a reveal)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault show [-f <file>] [--reveal] <id>")
		os.Exit(1)
	}

	cmd.Show(resolvePathOrExit(*file), fs.Arg(0), *reveal, *useKeyring)
}

func runPassword(args []string) {
	fs := flag.NewFlagSet("password", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault password [-f <file>] <id>")
		os.Exit(1)
	}

	cmd.Password(resolvePathOrExit(*file), fs.Arg(0), *useKeyring)
}

func runLs(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.List(resolvePathOrExit(*file), *useKeyring)
}

func runDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	builtins := fs.Bool("builtins", false, "Show builtin fields only")
	showPasswords := fs.Bool("show-passwords", false, "Show passwords in plaintext (recorded as a reveal for every entry)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Dump(resolvePathOrExit(*file), *builtins, *showPasswords, *useKeyring)
}

func runPasswd(args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	file, useKeyring := vaultFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Passwd(resolvePathOrExit(*file), *useKeyring)
}

func runForget(args []string) {
	fs := flag.NewFlagSet("forget", flag.ExitOnError)
	file := fs.String("f", "", "Path to vault file (default: $PVLTFILE)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Forget(resolvePathOrExit(*file))
}

func printUsage() {
	fmt.Println("passvault - Single-file encrypted password store")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  passvault <command> [arguments]")
	fmt.Println()
	fmt.Println("The vault file is taken from -f or the PVLTFILE environment variable.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  new       Create a new vault file")
	fmt.Println("  add       Add an entry")
	fmt.Println("  edit      Overwrite an entry's properties")
	fmt.Println("  rm        Delete an entry")
	fmt.Println("  show      Display an entry (passwords masked)")
	fmt.Println("  password  Print an entry's password")
	fmt.Println("  ls        List entry ids")
	fmt.Println("  dump      Summarize all entries")
	fmt.Println("  passwd    Change the master password")
	fmt.Println("  forget    Remove the cached password from the OS keyring")
	fmt.Println("  help      Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  passvault new -f secrets.pvlt")
	fmt.Println("  passvault add email password=abc123 note=personal")
	fmt.Println("  passvault show --reveal email")
	fmt.Println()
	fmt.Println("Use 'passvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "new":
		fmt.Println("passvault new [-f <file>] [--keyring]")
		fmt.Println()
		fmt.Println("Creates a new vault file holding an empty entry table.")
		fmt.Println("Prompts for the master password with confirmation.")
		fmt.Println("The password is not stored anywhere - losing it means losing the vault.")
	case "add":
		fmt.Println("passvault add [-f <file>] [-p] [--keyring] <id> [name=value ...]")
		fmt.Println()
		fmt.Println("Adds an entry with the given properties. Every entry must carry a")
		fmt.Println("password property; with -p it is prompted for instead of passed on")
		fmt.Println("the command line. Property names may not shadow the builtin fields.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  passvault add email password=abc123 note=personal")
		fmt.Println("  passvault add -p email note=personal")
	case "edit":
		fmt.Println("passvault edit [-f <file>] [-p] [-y] [--keyring] <id> [name=value ...]")
		fmt.Println()
		fmt.Println("Replaces all of an entry's properties. Shows a masked diff of the")
		fmt.Println("change and asks for confirmation unless -y is given. Resets the")
		fmt.Println("entry's reveal timestamp.")
	case "rm":
		fmt.Println("passvault rm [-f <file>] [-y] [--keyring] <id>")
		fmt.Println()
		fmt.Println("Deletes an entry. Asks for confirmation unless -y is given.")
	case "show":
		fmt.Println("passvault show [-f <file>] [--reveal] [--keyring] <id>")
		fmt.Println()
		fmt.Println("Displays an entry with the password masked. With --reveal the")
		fmt.Println("password is shown and the entry's last_revealed timestamp updated.")
	case "password":
		fmt.Println("passvault password [-f <file>] [--keyring] <id>")
		fmt.Println()
		fmt.Println("Prints the entry's password to stdout, suitable for piping.")
		fmt.Println("Always updates the entry's last_revealed timestamp.")
	case "ls":
		fmt.Println("passvault ls [-f <file>] [--keyring]")
		fmt.Println()
		fmt.Println("Lists all entry ids.")
	case "dump":
		fmt.Println("passvault dump [-f <file>] [--builtins] [--show-passwords] [--keyring]")
		fmt.Println()
		fmt.Println("Summarizes every entry. --builtins restricts output to the builtin")
		fmt.Println("timestamp fields. --show-passwords prints passwords in plaintext,")
		fmt.Println("which counts as a reveal for every entry.")
	case "passwd":
		fmt.Println("passvault passwd [-f <file>] [--keyring]")
		fmt.Println()
		fmt.Println("Changes the master password and re-encrypts the vault.")
	case "forget":
		fmt.Println("passvault forget [-f <file>]")
		fmt.Println()
		fmt.Println("Removes the cached master password for the vault from the OS keyring.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
