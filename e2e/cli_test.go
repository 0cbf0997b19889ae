package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaraujo/treinos/internal/api"
	"github.com/dmaraujo/treinos/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "treinos-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/treinos")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		Tracker:         app.TrackerController,
		EarningsService: app.EarningsService,
		ActivityService: app.ActivityService,
		SkillsService:   app.SkillsService,
		Days:            app.TrainingDayService,
		Clock:           app.Clock,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	User struct {
		ID            string `json:"id"`
		CharacterName string `json:"character_name"`
		Vocation      string `json:"vocation"`
		IsAdmin       bool   `json:"is_admin"`
	} `json:"user"`
	SessionToken string `json:"session_token"`
}

type standingResponse struct {
	CharacterName string `json:"character_name"`
	State         string `json:"state"`
	AmountOwed    int    `json:"amount_owed"`
	PaymentCount  int    `json:"payment_count"`
}

type standingsResponse struct {
	TrainingDate string             `json:"training_date"`
	Standings    []standingResponse `json:"standings"`
}

type paymentResponse struct {
	ID           string `json:"id"`
	TrainingDate string `json:"training_date"`
	Amount       int    `json:"amount"`
	State        string `json:"state"`
}

type earningsResponse struct {
	ReportsFiled  int `json:"reports_filed"`
	LateCount     int `json:"late_count"`
	PendingCount  int `json:"pending_count"`
	TotalEarnings int `json:"total_earnings"`
}

type checkInResponse struct {
	ID           string `json:"id"`
	TrainingDate string `json:"training_date"`
}

type activityResponse struct {
	CharacterName string `json:"character_name"`
	TotalCheckIns int    `json:"total_check_ins"`
	ActiveToday   bool   `json:"active_today"`
}

type ledgerEntryResponse struct {
	CharacterName string `json:"character_name"`
	TotalEarnings int    `json:"total_earnings"`
	TotalPaid     int    `json:"total_paid"`
	Balance       int    `json:"balance"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("auth", "register", "--name", "Alice", "--pass", "secret123", "--vocation", "EK")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.User.CharacterName)
	assert.Equal(t, "EK", authResp.User.Vocation)
	assert.NotEmpty(t, authResp.SessionToken)

	// Me (token should be saved in token file)
	output, err = cli.run("auth", "me")
	require.NoError(t, err, "output: %s", output)

	var user struct {
		ID            string `json:"id"`
		CharacterName string `json:"character_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "Alice", user.CharacterName)
	assert.Equal(t, authResp.User.ID, user.ID)

	// Logout clears the token
	output, err = cli.run("auth", "logout")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Logged out", msgResp.Message)

	output, err = cli.run("auth", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")
}

func TestCLI_ReportAndPayFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Register two characters
	output, err := cli1.run("auth", "register", "--name", "Alice", "--pass", "secret123", "--vocation", "MS")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("auth", "register", "--name", "Bob", "--pass", "secret123", "--vocation", "EK")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice reports Bob
	output, err = cli1.runWithToken(token1, "report", "Bob")
	require.NoError(t, err, "output: %s", output)

	var standing standingResponse
	require.NoError(t, json.Unmarshal([]byte(output), &standing))
	assert.Equal(t, "reported_within_grace", standing.State)
	assert.Equal(t, 10000, standing.AmountOwed)

	// Bob pays inside the grace window
	output, err = cli1.runWithToken(token2, "pay", "--proof", "12:05 Player Bob deposited 10000 gold coins.")
	require.NoError(t, err, "output: %s", output)

	var payment paymentResponse
	require.NoError(t, json.Unmarshal([]byte(output), &payment))
	assert.Equal(t, "paid_on_time", payment.State)
	assert.Equal(t, 10000, payment.Amount)

	// Standings show Bob paid
	output, err = cli1.runWithToken(token1, "players")
	require.NoError(t, err, "output: %s", output)

	var standings standingsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &standings))
	found := false
	for _, s := range standings.Standings {
		if s.CharacterName == "Bob" {
			found = true
			assert.Equal(t, "paid_on_time", s.State)
		}
	}
	assert.True(t, found, "Bob should be in the standings")

	// Alice's earnings show one pending-or-resolved report
	output, err = cli1.runWithToken(token1, "earnings")
	require.NoError(t, err, "output: %s", output)

	var earnings earningsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &earnings))
	assert.Equal(t, 1, earnings.ReportsFiled)
	assert.Equal(t, 0, earnings.LateCount)

	// Bob's payment history
	output, err = cli1.runWithToken(token2, "payments")
	require.NoError(t, err, "output: %s", output)

	var payments []paymentResponse
	require.NoError(t, json.Unmarshal([]byte(output), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, payment.ID, payments[0].ID)
}

func TestCLI_ActivityAndLedger(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// "White Widow" registers as the admin character
	output, err := cli.run("auth", "register", "--name", "White Widow", "--pass", "secret123", "--vocation", "ED")
	require.NoError(t, err, "output: %s", output)
	var adminAuth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &adminAuth))
	require.True(t, adminAuth.User.IsAdmin)

	output, err = cli.run("auth", "register", "--name", "Alice", "--pass", "secret123", "--vocation", "RP")
	require.NoError(t, err, "output: %s", output)
	var aliceAuth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &aliceAuth))

	// Alice checks Bob in, and the board picks him up
	output, err = cli.runWithToken(aliceAuth.SessionToken, "checkin", "Bob")
	require.NoError(t, err, "output: %s", output)

	var checkIn checkInResponse
	require.NoError(t, json.Unmarshal([]byte(output), &checkIn))
	assert.NotEmpty(t, checkIn.ID)

	output, err = cli.runWithToken(aliceAuth.SessionToken, "activity")
	require.NoError(t, err, "output: %s", output)

	var board []activityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board, 1)
	assert.Equal(t, "Bob", board[0].CharacterName)
	assert.Equal(t, 1, board[0].TotalCheckIns)
	assert.True(t, board[0].ActiveToday)

	// The admin records a payout for Alice and reads the ledger
	output, err = cli.runWithToken(adminAuth.SessionToken, "admin", "payout", "Alice", "--amount", "2000")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(adminAuth.SessionToken, "admin", "ledger")
	require.NoError(t, err, "output: %s", output)

	var ledger []ledgerEntryResponse
	require.NoError(t, json.Unmarshal([]byte(output), &ledger))
	require.Len(t, ledger, 1)
	assert.Equal(t, "Alice", ledger[0].CharacterName)
	assert.Equal(t, 2000, ledger[0].TotalPaid)
	assert.Equal(t, -2000, ledger[0].Balance)

	// Non-admins get turned away
	output, err = cli.runWithToken(aliceAuth.SessionToken, "admin", "ledger")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "admin")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Me without auth
	output, err := cli.run("auth", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Register, then self-report
	output, err = cli.run("auth", "register", "--name", "Alice", "--pass", "secret123", "--vocation", "RP")
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "report", "Alice")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "report")

	// Checking in your own character is rejected
	output, err = cli.runWithToken(auth.SessionToken, "checkin", "Alice")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "check in")

	// Checking in the same player twice in a day is rejected
	output, err = cli.runWithToken(auth.SessionToken, "checkin", "Bob")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(auth.SessionToken, "checkin", "Bob")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "checked in")
}
