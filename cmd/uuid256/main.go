// uuid256 - bridge UUIDs and 256-bit token ids from the command line
//
// Generates UUIDv7 and versioned 256-bit identifiers, converts between the
// UUID, canonical hex and Base58 forms, and leases v1 node ids from Redis.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/posaune0423/uuid256"
	"github.com/posaune0423/uuid256/tokenid"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stdout)
		return 2
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "uuid":
		err = runUUID(rest, stdout, stderr)
	case "bridge":
		err = runBridge(rest, stdout, stderr)
	case "unbridge":
		err = runUnbridge(rest, stdout, stderr)
	case "new":
		err = runNew(rest, stdout, stderr)
	case "encode":
		err = runEncode(rest, stdout, stderr)
	case "decode":
		err = runDecode(rest, stdout, stderr)
	case "inspect":
		err = runInspect(rest, stdout, stderr)
	case "node":
		err = runNode(rest, stdout, stderr)
	case "help", "--help", "-h":
		printHelp(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printHelp(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		if code := uuid256.Code(err); code != "" {
			fmt.Fprintf(stderr, "%s: %v\n", code, err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `uuid256 - bridge UUIDs and 256-bit token ids

Usage:
  uuid256 uuid [-v4] [-n N]             Generate UUIDv7 (or v4) identifiers
  uuid256 bridge [-decimal] <uuid>      UUID -> canonical 0x+64 hex
  uuid256 unbridge <hex>                canonical hex -> UUID
  uuid256 new [flags]                   Generate versioned 256-bit ids
  uuid256 encode <hex>                  canonical hex -> u2: Base58
  uuid256 decode <u2:...>               u2: Base58 -> canonical hex
  uuid256 inspect <hex|u2:...>          Show every form and the v1 fields
  uuid256 node [-current] [-reset]      Lease a v1 node id from Redis

New flags:
  -version int     0 (random) or 1 (time sortable) (default 1)
  -node string     fix the v1 node id (decimal or 0x hex, default $UUID256_NODE)
  -redis           lease the v1 node id from Redis ($REDIS_ADDR)
  -n int           number of ids (default 1)
  -json            print {canonical, version, hr, short} per id

Common flags:
  -v               verbose diagnostics on stderr`)
}

// command carries what every subcommand needs.
type command struct {
	fs      *flag.FlagSet
	verbose *bool
	logger  *uuid256.ZapLogger
}

func newCommand(name string, stderr io.Writer) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &command{
		fs:      fs,
		verbose: fs.Bool("v", false, "verbose diagnostics"),
	}
}

// parse parses flags and sets up the logger; the caller must call done.
func (c *command) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	logger, err := uuid256.NewConsoleZapLogger(*c.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	c.logger = logger
	return nil
}

func (c *command) done() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// arg returns the single positional argument.
func (c *command) arg(stderr io.Writer, what string) (string, error) {
	if c.fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s: expected exactly one %s argument\n", c.fs.Name(), what)
		return "", errUsage
	}
	return strings.TrimSpace(c.fs.Arg(0)), nil
}

func runUUID(args []string, stdout, stderr io.Writer) error {
	c := newCommand("uuid", stderr)
	v4 := c.fs.Bool("v4", false, "generate random v4 UUIDs instead of v7")
	n := c.fs.Int("n", 1, "number of UUIDs")
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	for i := 0; i < *n; i++ {
		u := uuid256.GenerateUUIDV7()
		if *v4 {
			u = uuid256.GenerateUUID()
		}
		fmt.Fprintln(stdout, u.String())
	}
	return nil
}

func runBridge(args []string, stdout, stderr io.Writer) error {
	c := newCommand("bridge", stderr)
	decimal := c.fs.Bool("decimal", false, "also print the token id in base 10")
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	s, err := c.arg(stderr, "UUID")
	if err != nil {
		return err
	}
	id, err := uuid256.UUIDToU256(s)
	if err != nil {
		return err
	}
	c.logger.Debug("bridged", "uuid", s, "canonical", id.Hex())

	fmt.Fprintln(stdout, id.Hex())
	if *decimal {
		fmt.Fprintln(stdout, tokenid.ToDecimal(id))
	}
	return nil
}

func runUnbridge(args []string, stdout, stderr io.Writer) error {
	c := newCommand("unbridge", stderr)
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	s, err := c.arg(stderr, "hex")
	if err != nil {
		return err
	}
	u, err := uuid256.U256ToUUID(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, u.String())
	return nil
}

// idView is one line of new -json output.
type idView struct {
	Canonical uuid256.U256 `json:"canonical"`
	Version   int          `json:"version"`
	HR        string       `json:"hr"`
	Short     string       `json:"short"`
}

func newIDView(id uuid256.U256) idView {
	return idView{
		Canonical: id,
		Version:   uuid256.VersionOf(id),
		HR:        uuid256.ToBase58(id),
		Short:     uuid256.ToShort(id),
	}
}

func runNew(args []string, stdout, stderr io.Writer) error {
	c := newCommand("new", stderr)
	version := c.fs.Int("version", 1, "identifier version, 0 or 1")
	nodeFlag := c.fs.String("node", "", "v1 node id, decimal or 0x hex")
	useRedis := c.fs.Bool("redis", false, "lease the v1 node id from Redis")
	redisAddr := c.fs.String("redis-addr", "", "Redis address (default $REDIS_ADDR)")
	key := c.fs.String("key", uuid256.DefaultNodeKey, "Redis key for node leasing")
	n := c.fs.Int("n", 1, "number of ids")
	asJSON := c.fs.Bool("json", false, "print JSON objects")
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	if *version != 0 && *version != 1 {
		fmt.Fprintf(stderr, "new: unsupported version %d\n", *version)
		return errUsage
	}
	if *version == 0 && (*useRedis || *nodeFlag != "") {
		fmt.Fprintln(stderr, "new: -redis and -node only apply to version 1")
		return errUsage
	}

	cfg, err := uuid256.GeneratorConfigFromEnv()
	if err != nil {
		return err
	}
	if *nodeFlag != "" {
		node, err := uuid256.ParseNode(*nodeFlag)
		if err != nil {
			return err
		}
		cfg.Node = &node
	}

	var gen *uuid256.Generator
	if *useRedis {
		client := redis.NewClient(uuid256.RedisOptionsWithAddr(*redisAddr))
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		gen, err = uuid256.NewNodeAllocator(client, *key, c.logger, nil).NewGenerator(ctx, cfg)
	} else {
		gen, err = uuid256.NewGenerator(cfg, c.logger, nil)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	for i := 0; i < *n; i++ {
		var id uuid256.U256
		if *version == 0 {
			id, err = gen.NextV0()
		} else {
			id, err = gen.NextV1(nil)
		}
		if err != nil {
			return err
		}

		if !*asJSON {
			fmt.Fprintln(stdout, id.Hex())
			continue
		}
		if err := enc.Encode(newIDView(id)); err != nil {
			return err
		}
	}
	return nil
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	c := newCommand("encode", stderr)
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	s, err := c.arg(stderr, "hex")
	if err != nil {
		return err
	}
	id, err := uuid256.AsCanonical(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, uuid256.ToBase58(id))
	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	c := newCommand("decode", stderr)
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	s, err := c.arg(stderr, "Base58")
	if err != nil {
		return err
	}
	id, err := uuid256.FromBase58(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, id.Hex())
	return nil
}

type inspectView struct {
	idView
	Decimal string            `json:"decimal"`
	UUID    string            `json:"uuid,omitempty"`
	V1      *uuid256.V1Fields `json:"v1,omitempty"`
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	c := newCommand("inspect", stderr)
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	s, err := c.arg(stderr, "identifier")
	if err != nil {
		return err
	}

	var id uuid256.U256
	if strings.HasPrefix(s, uuid256.CanonicalPrefix) {
		id, err = uuid256.AsCanonical(s)
	} else {
		id, err = uuid256.FromBase58(s)
	}
	if err != nil {
		return err
	}

	view := inspectView{
		idView:  newIDView(id),
		Decimal: tokenid.ToDecimal(id),
	}
	if u, err := id.UUID(); err == nil {
		view.UUID = u.String()
	}
	if f, err := uuid256.DecodeV1(id); err == nil {
		view.V1 = &f
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func runNode(args []string, stdout, stderr io.Writer) error {
	c := newCommand("node", stderr)
	redisAddr := c.fs.String("redis-addr", "", "Redis address (default $REDIS_ADDR)")
	key := c.fs.String("key", uuid256.DefaultNodeKey, "Redis key for node leasing")
	current := c.fs.Bool("current", false, "print the last leased node id without leasing")
	reset := c.fs.Bool("reset", false, "delete the counter")
	if err := c.parse(args); err != nil {
		return err
	}
	defer c.done()

	client := redis.NewClient(uuid256.RedisOptionsWithAddr(*redisAddr))
	defer client.Close()
	alloc := uuid256.NewNodeAllocator(client, *key, c.logger, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch {
	case *reset:
		return alloc.Reset(ctx)
	case *current:
		node, err := alloc.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, node)
	default:
		node, err := alloc.Allocate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, node)
	}
	return nil
}
