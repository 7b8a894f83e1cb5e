package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/fixtures/awsmock"
)

const mockShutdownTimeout = 5 * time.Second

var mockEC2Cmd = &cobra.Command{
	Use:   "mock-ec2",
	Short: "Serve recorded EC2 responses",
	Long: `Serve recorded EC2 DescribeVpcs responses on POST /, in script order.
The last response repeats once the script is exhausted.

Script names: ok, rate-limit, throttling.

Examples:
  # Two throttled calls, then success
  limitlens mock-ec2 --addr 127.0.0.1:4566 --script rate-limit,throttling,ok`,
	Args: cobra.NoArgs,
	RunE: runMockEC2,
}

func init() {
	rootCmd.AddCommand(mockEC2Cmd)

	mockEC2Cmd.Flags().String("addr", "", "Listen address (defaults to mock.addr)")
	mockEC2Cmd.Flags().StringSlice("script", nil, "Response script (defaults to mock.script)")
}

func runMockEC2(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadedConfig()
	if err != nil {
		return apperrors.WrapConfigInvalid(ctx, err, "failed to load configuration")
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Mock.Addr
	}
	names, err := cmd.Flags().GetStringSlice("script")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = cfg.Mock.Script
	}

	script, err := buildScript(names)
	if err != nil {
		return apperrors.WrapInvalidInput(ctx, err, "invalid response script")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return apperrors.WrapInvalidInput(ctx, err, "failed to listen")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serveMock(ctx, listener, script)
}

// buildScript resolves response names into a replay script.
func buildScript(names []string) (*awsmock.Script, error) {
	if len(names) == 0 {
		return nil, errors.New("script is empty")
	}
	responses := make([]awsmock.Response, 0, len(names))
	for _, name := range names {
		resp, ok := awsmock.Named(name)
		if !ok {
			return nil, fmt.Errorf("unknown response %q", name)
		}
		responses = append(responses, resp)
	}
	return awsmock.NewScript(responses...), nil
}

// serveMock serves script on listener until ctx is cancelled.
func serveMock(ctx context.Context, listener net.Listener, script *awsmock.Script) error {
	srv := &http.Server{
		Handler:           awsmock.NewHandler(script),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	logInfo("Mock EC2 endpoint listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), mockShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logInfo("Mock EC2 endpoint stopped", zap.Int("requests", script.Calls()))
	return nil
}
