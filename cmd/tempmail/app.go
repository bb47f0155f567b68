package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	tempmail "github.com/tempmail/client-go"
)

var errNoAddress = errors.New("no mailbox address: pass --address or set TEMPMAIL_ADDRESS")

type app struct {
	cfg    Config
	logger *zap.Logger
	out    io.Writer

	kp *kingpin.Application

	baseURL *string
	timeout *time.Duration
	address *string
	jsonOut *bool

	generate      *kingpin.CmdClause
	generateCount *int

	domains *kingpin.CmdClause

	validate        *kingpin.CmdClause
	validateAddress *string

	inbox *kingpin.CmdClause

	read   *kingpin.CmdClause
	readID *int

	download     *kingpin.CmdClause
	downloadID   *int
	downloadFile *string
	downloadDest *string
	downloadAll  *bool
	downloadDir  *string
	downloadJobs *int

	wait         *kingpin.CmdClause
	waitSubject  *string
	waitFrom     *string
	waitMatch    *string
	waitCount    *int
	waitTimeout  *time.Duration
	waitInterval *time.Duration
}

func newApp(cfg Config, logger *zap.Logger, out io.Writer) *app {
	a := &app{cfg: cfg, logger: logger, out: out}

	kp := kingpin.New("tempmail", "Disposable mailbox client for 1secmail.")
	kp.UsageWriter(out)
	kp.ErrorWriter(out)
	a.kp = kp

	a.baseURL = kp.Flag("base-url", "Service base URL.").Default(cfg.BaseURL).String()
	a.timeout = kp.Flag("timeout", "Per-request timeout.").Default(cfg.Timeout.String()).Duration()
	a.address = kp.Flag("address", "Mailbox address to operate on.").Short('a').Default(cfg.Address).String()
	a.jsonOut = kp.Flag("json", "Print results as JSON.").Bool()

	a.generate = kp.Command("generate", "Generate random mailbox addresses.")
	a.generateCount = a.generate.Flag("count", "Number of addresses.").Short('n').Default("1").Int()

	a.domains = kp.Command("domains", "List the domains the service accepts.")

	a.validate = kp.Command("validate", "Check that an address can be used with the service.")
	a.validateAddress = a.validate.Arg("address", "Address to check.").Required().String()

	a.inbox = kp.Command("inbox", "List the messages in the mailbox.")

	a.read = kp.Command("read", "Show a message.")
	a.readID = a.read.Arg("id", "Message id.").Required().Int()

	a.download = kp.Command("download", "Download message attachments.")
	a.downloadID = a.download.Arg("id", "Message id.").Required().Int()
	a.downloadFile = a.download.Arg("file", "Attachment filename.").String()
	a.downloadDest = a.download.Arg("dest", "Destination path. Defaults to the attachment name in --dir.").String()
	a.downloadAll = a.download.Flag("all", "Download every attachment of the message.").Bool()
	a.downloadDir = a.download.Flag("dir", "Directory for downloaded files.").Default(".").String()
	a.downloadJobs = a.download.Flag("jobs", "Concurrent downloads with --all.").Default(fmt.Sprint(cfg.Concurrency)).Int()

	a.wait = kp.Command("wait", "Poll the mailbox until matching messages arrive.")
	a.waitSubject = a.wait.Flag("subject", "Exact subject to match.").String()
	a.waitFrom = a.wait.Flag("from", "Exact sender to match.").String()
	a.waitMatch = a.wait.Flag("match", "Regular expression the subject must match.").String()
	a.waitCount = a.wait.Flag("count", "Number of matching messages to wait for.").Default("1").Int()
	a.waitTimeout = a.wait.Flag("wait-timeout", "Give up after this long.").Default("60s").Duration()
	a.waitInterval = a.wait.Flag("interval", "Polling interval.").Default("5s").Duration()

	return a
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, err := a.kp.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case a.generate.FullCommand():
		return a.runGenerate(ctx)
	case a.domains.FullCommand():
		return a.runDomains(ctx)
	case a.validate.FullCommand():
		return a.runValidate(ctx)
	case a.inbox.FullCommand():
		return a.runInbox(ctx)
	case a.read.FullCommand():
		return a.runRead(ctx)
	case a.download.FullCommand():
		return a.runDownload(ctx)
	case a.wait.FullCommand():
		return a.runWait(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) options() []tempmail.Option {
	return []tempmail.Option{
		tempmail.WithBaseURL(*a.baseURL),
		tempmail.WithTimeout(*a.timeout),
		tempmail.WithLogger(a.logger),
	}
}

// mailbox returns a client bound to the configured address.
func (a *app) mailbox(ctx context.Context) (*tempmail.Client, error) {
	addr := strings.TrimSpace(*a.address)
	if addr == "" {
		return nil, errNoAddress
	}
	return tempmail.FromAddress(ctx, addr, a.options()...)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printLines(lines []string) error {
	if *a.jsonOut {
		return a.printJSON(lines)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(a.out, l); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runGenerate(ctx context.Context) error {
	addrs, err := tempmail.GenerateAddresses(ctx, *a.generateCount, a.options()...)
	if err != nil {
		return err
	}
	return a.printLines(addrs)
}

func (a *app) runDomains(ctx context.Context) error {
	domains, err := tempmail.GetDomains(ctx, a.options()...)
	if err != nil {
		return err
	}
	return a.printLines(domains)
}

func (a *app) runValidate(ctx context.Context) error {
	addr, err := tempmail.New(a.options()...).Validator().Validate(ctx, *a.validateAddress)
	if err != nil {
		return err
	}
	if *a.jsonOut {
		return a.printJSON(map[string]string{"address": addr.String(), "local": addr.Local, "domain": addr.Domain})
	}
	_, err = fmt.Fprintf(a.out, "%s is valid\n", addr)
	return err
}

func (a *app) printSummaries(msgs []tempmail.InboxSummary) error {
	if *a.jsonOut {
		return a.printJSON(msgs)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFROM\tSUBJECT")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.Date.Format(tempmail.TimestampLayout), m.From, m.Subject)
	}
	return tw.Flush()
}

func (a *app) runInbox(ctx context.Context) error {
	c, err := a.mailbox(ctx)
	if err != nil {
		return err
	}
	if err := c.CheckInbox(ctx); err != nil {
		return err
	}
	return a.printSummaries(c.Messages())
}

func (a *app) runRead(ctx context.Context) error {
	c, err := a.mailbox(ctx)
	if err != nil {
		return err
	}
	msg, err := c.GetMessage(ctx, *a.readID)
	if err != nil {
		return err
	}
	if *a.jsonOut {
		return a.printJSON(msg)
	}

	fmt.Fprintf(a.out, "From:    %s\n", msg.From)
	fmt.Fprintf(a.out, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(a.out, "Date:    %s\n", msg.Date.Format(tempmail.TimestampLayout))
	for _, att := range msg.Attachments {
		fmt.Fprintf(a.out, "Attachment: %s (%s, %d bytes)\n", att.Filename, att.ContentType, att.Size)
	}
	body := msg.TextBody
	if body == "" {
		body = msg.Body
	}
	_, err = fmt.Fprintf(a.out, "\n%s\n", body)
	return err
}

func (a *app) runDownload(ctx context.Context) error {
	c, err := a.mailbox(ctx)
	if err != nil {
		return err
	}

	if !*a.downloadAll {
		if *a.downloadFile == "" {
			return errors.New("download: pass an attachment name or --all")
		}
		dest := *a.downloadDest
		if dest == "" {
			name, err := localName(*a.downloadFile)
			if err != nil {
				return err
			}
			dest = filepath.Join(*a.downloadDir, name)
		}
		res, err := c.DownloadAttachment(ctx, *a.downloadID, *a.downloadFile, dest)
		if err != nil {
			return err
		}
		return a.printDownloads([]*tempmail.DownloadResult{res})
	}

	if *a.downloadFile != "" {
		return errors.New("download: --all does not take an attachment name")
	}
	msg, err := c.GetMessage(ctx, *a.downloadID)
	if err != nil {
		return err
	}
	results, err := downloadAll(ctx, c, msg, *a.downloadDir, *a.downloadJobs)
	if err != nil {
		return err
	}
	return a.printDownloads(results)
}

// downloadAll fetches every attachment of msg into dir with at most jobs
// transfers in flight. Results keep the order of msg.Attachments.
func downloadAll(ctx context.Context, c *tempmail.Client, msg *tempmail.Message, dir string, jobs int) ([]*tempmail.DownloadResult, error) {
	if jobs <= 0 {
		jobs = 1
	}
	names := make([]string, len(msg.Attachments))
	seen := make(map[string]bool, len(msg.Attachments))
	for i, att := range msg.Attachments {
		name, err := localName(att.Filename)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate attachment name %q", name)
		}
		seen[name] = true
		names[i] = name
	}

	results := make([]*tempmail.DownloadResult, len(msg.Attachments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	var mu sync.Mutex
	for i, att := range msg.Attachments {
		i, att := i, att
		g.Go(func() error {
			res, err := c.DownloadAttachment(gctx, msg.ID, att.Filename, filepath.Join(dir, names[i]))
			if err != nil {
				return fmt.Errorf("download %s: %w", att.Filename, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// localName reduces a server-supplied attachment name to a single path
// element.
func localName(filename string) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	if name == "/" || name == "." || name == ".." {
		return "", fmt.Errorf("unusable attachment name %q", filename)
	}
	return name, nil
}

func (a *app) printDownloads(results []*tempmail.DownloadResult) error {
	if *a.jsonOut {
		return a.printJSON(results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(a.out, "%s\t%d bytes\tblake2b:%s\n", r.Path, r.Size, r.Checksum); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runWait(ctx context.Context) error {
	c, err := a.mailbox(ctx)
	if err != nil {
		return err
	}

	opts := []tempmail.WaitOption{
		tempmail.WithWaitTimeout(*a.waitTimeout),
		tempmail.WithPollInterval(*a.waitInterval),
	}
	if *a.waitSubject != "" {
		opts = append(opts, tempmail.WithSubject(*a.waitSubject))
	}
	if *a.waitFrom != "" {
		opts = append(opts, tempmail.WithFrom(*a.waitFrom))
	}
	if *a.waitMatch != "" {
		re, err := regexp.Compile(*a.waitMatch)
		if err != nil {
			return fmt.Errorf("invalid --match: %w", err)
		}
		opts = append(opts, tempmail.WithSubjectRegex(re))
	}

	a.logger.Info("waiting for messages",
		zap.String("address", c.Email()),
		zap.Int("count", *a.waitCount),
		zap.Duration("timeout", *a.waitTimeout))

	msgs, err := c.WaitForMessageCount(ctx, *a.waitCount, opts...)
	if err != nil {
		return err
	}
	return a.printSummaries(msgs)
}
