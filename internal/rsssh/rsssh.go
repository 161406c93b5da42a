// Package rsssh dials a remote host over SSH and exposes its stdout as
// an io.Reader, the shape cmd/rawscanremote needs to hand off to
// rawscan.Open without caring whether the descriptor it is scanning is
// local or remote. Grounded on the teacher's internal/ssh/client
// authentication-method selection and internal/clients dial sequence.
package rsssh

import (
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// Options configures a Dial call.
type Options struct {
	Addr           string // host:port
	User           string
	PrivateKeyPath string // if set, used as a public-key auth method
	UseAgent       bool   // if true, also offer ssh-agent's keys
	Timeout        time.Duration
	HostKeyCheck   ssh.HostKeyCallback // nil defaults to InsecureIgnoreHostKey, documented below
}

// AuthMethods builds the list of auth methods Dial will offer, in the
// same private-key-then-agent order the teacher's authmethods.go uses.
func AuthMethods(opts Options) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if opts.PrivateKeyPath != "" {
		keyBytes, err := os.ReadFile(opts.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("rsssh: reading private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("rsssh: parsing private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if opts.UseAgent {
		sock := os.Getenv("SSH_AUTH_SOCK")
		if sock == "" {
			return nil, fmt.Errorf("rsssh: SSH_AUTH_SOCK not set, cannot use agent")
		}
		conn, err := net.Dial("unix", sock)
		if err != nil {
			return nil, fmt.Errorf("rsssh: dialing ssh-agent: %w", err)
		}
		agentClient := agent.NewClient(conn)
		methods = append(methods, ssh.PublicKeysCallback(agentClient.Signers))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("rsssh: no auth methods configured")
	}
	return methods, nil
}

// Conn wraps an established SSH connection and its current session.
type Conn struct {
	client  *ssh.Client
	session *ssh.Session
}

// Dial connects to opts.Addr, authenticates, and opens a session.
// HostKeyCheck defaults to ssh.InsecureIgnoreHostKey, acceptable for
// the demo tooling this package serves but never for production use;
// callers targeting real infrastructure must set it explicitly.
func Dial(opts Options) (*Conn, error) {
	methods, err := AuthMethods(opts)
	if err != nil {
		return nil, err
	}

	hostKeyCheck := opts.HostKeyCheck
	if hostKeyCheck == nil {
		hostKeyCheck = ssh.InsecureIgnoreHostKey()
	}

	cfg := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            methods,
		HostKeyCallback: hostKeyCheck,
		Timeout:         opts.Timeout,
	}

	client, err := ssh.Dial("tcp", opts.Addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("rsssh: dial %s: %w", opts.Addr, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("rsssh: new session: %w", err)
	}

	return &Conn{client: client, session: session}, nil
}

// Run starts cmd on the remote host and returns its stdout as an
// io.Reader, suitable for passing straight to rawscan.Open.
func (c *Conn) Run(cmd string) (*Stdout, error) {
	pipe, err := c.session.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("rsssh: stdout pipe: %w", err)
	}
	if err := c.session.Start(cmd); err != nil {
		return nil, fmt.Errorf("rsssh: start %q: %w", cmd, err)
	}
	return &Stdout{reader: pipe, conn: c}, nil
}

// Close tears down the session and the underlying connection.
func (c *Conn) Close() error {
	sessErr := c.session.Close()
	clientErr := c.client.Close()
	if sessErr != nil {
		return sessErr
	}
	return clientErr
}

// Stdout is an io.Reader over a remote command's standard output. Wait
// must be called after the reader returns io.EOF to reap the remote
// process and surface its exit status.
type Stdout struct {
	reader interface {
		Read(p []byte) (int, error)
	}
	conn *Conn
}

func (s *Stdout) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Wait blocks until the remote command exits.
func (s *Stdout) Wait() error {
	return s.conn.session.Wait()
}
