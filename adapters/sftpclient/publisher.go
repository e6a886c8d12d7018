package sftpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"cargahoraria/internal/errors"

	"github.com/pkg/sftp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Config holds the connection settings of the roster drop box
type Config struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	RemoteDir             string
	InsecureIgnoreHostKey bool
}

// dialFunc opens an SFTP session; close releases it and its transport.
type dialFunc func(ctx context.Context) (client *sftp.Client, close func(), err error)

// Publisher uploads files to a remote directory over SFTP
type Publisher struct {
	cfg    Config
	dial   dialFunc
	logger zerolog.Logger
}

// NewPublisher creates a publisher that dials cfg.Host for every upload
func NewPublisher(cfg Config, logger zerolog.Logger) *Publisher {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	p := &Publisher{cfg: cfg, logger: logger}
	p.dial = p.dialSSH
	return p
}

// Publish uploads localPath as RemoteDir/remoteName, creating RemoteDir when
// missing. An empty remoteName keeps the local file name.
func (p *Publisher) Publish(ctx context.Context, localPath, remoteName string) error {
	if remoteName == "" {
		remoteName = filepath.Base(localPath)
	}
	client, closeFn, err := p.dial(ctx)
	if err != nil {
		return errors.PublishFailed(remoteName, err)
	}
	defer closeFn()

	remotePath := path.Join(p.cfg.RemoteDir, remoteName)
	n, err := upload(client, localPath, p.cfg.RemoteDir, remotePath)
	if err != nil {
		return errors.PublishFailed(remoteName, err)
	}
	p.logger.Info().Str("file", remotePath).Int64("bytes", n).Msg("roster published")
	return nil
}

func upload(client *sftp.Client, localPath, remoteDir, remotePath string) (int64, error) {
	if err := client.MkdirAll(remoteDir); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", remoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("open local file: %w", err)
	}
	defer src.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("create remote file: %w", err)
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("upload copy: %w", err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("close remote file: %w", err)
	}
	return n, nil
}

// dialSSH connects with password auth. The dial runs in a goroutine so a
// cancelled context returns immediately.
func (p *Publisher) dialSSH(ctx context.Context) (*sftp.Client, func(), error) {
	if p.cfg.Host == "" || p.cfg.User == "" {
		return nil, nil, fmt.Errorf("missing sftp host or user")
	}

	hostKey, err := p.hostKeyCallback()
	if err != nil {
		return nil, nil, err
	}
	sshCfg := &ssh.ClientConfig{
		User:            p.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(p.cfg.Password)},
		HostKeyCallback: hostKey,
		Timeout:         20 * time.Second,
	}
	addr := net.JoinHostPort(p.cfg.Host, strconv.Itoa(p.cfg.Port))

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, nil, fmt.Errorf("dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, nil, fmt.Errorf("dial %s: %w", addr, r.err)
		}
		sshClient = r.client
	}

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("new sftp client: %w", err)
	}
	p.logger.Debug().Str("addr", addr).Msg("sftp connected")
	return client, func() {
		client.Close()
		sshClient.Close()
	}, nil
}

// hostKeyCallback checks the server against ~/.ssh/known_hosts unless host
// key checking is disabled.
func (p *Publisher) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if p.cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate known_hosts: %w", err)
	}
	cb, err := knownhosts.New(filepath.Join(home, ".ssh", "known_hosts"))
	if err != nil {
		return nil, fmt.Errorf("load known_hosts: %w", err)
	}
	return cb, nil
}
