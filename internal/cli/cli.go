// Package cli implements zwallet's command-line subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zwallet/internal/kvstore"
	"github.com/zarlcorp/zwallet/internal/money"
	"github.com/zarlcorp/zwallet/internal/wallet"
	"github.com/zarlcorp/zwallet/internal/wipe"
	"golang.org/x/term"
)

// DataDir returns the default data directory for zwallet.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zwallet"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zwallet"
	}
	return home + "/.local/share/zwallet"
}

// ReadPassword prompts for a password on stderr and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new master password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenWallet prompts for the master password and opens the store and the
// wallet over it. The wallet seeds demo data on a fresh store.
func OpenWallet(dir string) (*kvstore.Store, *wallet.Wallet, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, nil, err
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	s, err := kvstore.Open(fsys, pass)
	if err != nil {
		return nil, nil, err
	}

	w, err := wallet.Open(s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return s, w, nil
}

// CmdLogin authenticates an email and starts the session.
func CmdLogin(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: zwallet login <email>")
		os.Exit(1)
	}

	s, w, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}
	defer s.Close()

	pass, err := ReadPassword("account password: ", os.Stderr)
	if err != nil {
		fail(err)
	}

	sess, err := w.Login(args[0], pass)
	if err != nil {
		fail(err)
	}
	fmt.Printf("welcome, %s\n", sess.DisplayName)
}

// CmdLogout ends the session.
func CmdLogout() {
	s, w, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}
	defer s.Close()

	if err := w.Logout(); err != nil {
		fail(err)
	}
	fmt.Println("logged out")
}

// CmdRegister creates a new account and logs it in.
func CmdRegister(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: zwallet register <email> <full name...>")
		os.Exit(1)
	}
	email := args[0]
	name := strings.Join(args[1:], " ")

	s, w, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}
	defer s.Close()

	pass, err := ReadPassword("account password: ", os.Stderr)
	if err != nil {
		fail(err)
	}
	confirm, err := ReadPassword("confirm password: ", os.Stderr)
	if err != nil {
		fail(err)
	}

	sess, err := w.Register(email, pass, confirm, name)
	if err != nil {
		fail(err)
	}
	fmt.Printf("account created for %s\n", sess.DisplayName)
}

// CmdWhoami prints the active session.
func CmdWhoami() {
	s, w, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}
	defer s.Close()

	sess, ok := w.Session()
	if !ok {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("%s <%s>\n", sess.DisplayName, sess.Email)
}

// CmdBalance prints the current balance.
func CmdBalance() {
	s, w := openLoggedIn()
	defer s.Close()

	fmt.Println(w.Balance().Format())
}

// CmdDeposit adds funds to the balance.
func CmdDeposit(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: zwallet deposit <amount> [source...]")
		os.Exit(1)
	}
	amount := parseAmount(args[0])
	source := strings.Join(args[1:], " ")

	s, w := openLoggedIn()
	defer s.Close()

	balance, err := w.Deposit(amount, source)
	if err != nil {
		fail(err)
	}
	fmt.Printf("deposited %s, balance is now %s\n", money.FormatFloat(amount), balance.Format())
}

// CmdTransfer sends funds to a recipient.
func CmdTransfer(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: zwallet transfer <recipient> <amount> [note...]")
		os.Exit(1)
	}
	recipient := args[0]
	amount := parseAmount(args[1])
	note := strings.Join(args[2:], " ")

	s, w := openLoggedIn()
	defer s.Close()

	balance, err := w.Transfer(amount, recipient, note)
	if err != nil {
		fail(err)
	}
	fmt.Printf("sent %s to %s, balance is now %s\n",
		money.FormatFloat(amount), recipient, balance.Format())
}

// CmdContacts lists the saved recipients.
func CmdContacts() {
	s, w := openLoggedIn()
	defer s.Close()

	names := w.Contacts()
	if len(names) == 0 {
		fmt.Println("no saved contacts")
		return
	}
	for _, n := range names {
		fmt.Println("  " + n)
	}
}

// CmdContactAdd saves a new recipient.
func CmdContactAdd(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: zwallet contact-add <name...>")
		os.Exit(1)
	}
	name := strings.Join(args, " ")

	s, w := openLoggedIn()
	defer s.Close()

	added, err := w.AddContact(name)
	if err != nil {
		fail(err)
	}
	if !added {
		fmt.Println("already saved")
		return
	}
	fmt.Printf("saved %s\n", strings.TrimSpace(name))
}

// CmdHistory prints the transaction history, newest first.
func CmdHistory(args []string) {
	asJSON := hasFlag(args, "--json")

	s, w := openLoggedIn()
	defer s.Close()

	txs := w.History()
	if len(txs) == 0 {
		fmt.Println("no transactions")
		return
	}

	if asJSON {
		printJSON(txs)
		return
	}

	for _, tx := range txs {
		fmt.Printf("  %s  %-8s  %12s  %s\n",
			tx.Date, tx.Kind, money.FormatFloat(tx.Amount), tx.Detail)
	}
}

// CmdReset removes all stored wallet data after confirmation. The next
// open re-seeds the demo data.
func CmdReset(args []string) {
	s, _, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}
	defer s.Close()

	if !hasFlag(args, "--yes") {
		fmt.Fprintln(os.Stderr, "this will:")
		for _, step := range wipe.Plan() {
			fmt.Fprintln(os.Stderr, "  - "+step)
		}
		fmt.Fprint(os.Stderr, "type yes to confirm: ")

		var answer string
		fmt.Fscanln(os.Stdin, &answer)
		if answer != "yes" {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
	}

	result := wipe.Execute(s)
	fmt.Println(result.Summary())
	if result.HasErrors() {
		os.Exit(1)
	}
}

// openLoggedIn opens the wallet and exits unless a session is active,
// mirroring the UI's private-page guard.
func openLoggedIn() (*kvstore.Store, *wallet.Wallet) {
	s, w, err := OpenWallet(DataDir())
	if err != nil {
		fail(err)
	}

	if _, ok := w.Session(); !ok {
		s.Close()
		fmt.Fprintln(os.Stderr, "zwallet: not logged in, run: zwallet login <email>")
		os.Exit(1)
	}
	return s, w
}

func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zwallet: %q is not a number\n", s)
		os.Exit(1)
	}
	return f
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "zwallet: %v\n", err)
	os.Exit(1)
}
