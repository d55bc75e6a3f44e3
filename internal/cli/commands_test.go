package cli

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/test/testutil"
)

const igcaOK = "OK - Serial: " + testutil.IGCASerial +
	", Subject: " + testutil.IGCASubject +
	", Issuer: " + testutil.IGCASubject +
	", Signature algorithm: RSA, Public key algorithm: RSA, Public key size: 2048"

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func (r cliResult) exitCode(t *testing.T) int {
	t.Helper()
	if r.err == nil {
		return 0
	}
	code, _, ok := ExitCode(r.err)
	if !ok {
		t.Fatalf("expected ExitError, got %v", r.err)
	}
	return code
}

// runCLI executes the root command with package output captured and no
// terminal attached.
func runCLI(t *testing.T, browse BrowseFunc, stdin string, args ...string) cliResult {
	t.Helper()

	oldOut, oldErr, oldOpt, oldTTY := outStdout, outStderr, outOpt, isTerminalFn
	t.Cleanup(func() {
		outStdout, outStderr, outOpt, isTerminalFn = oldOut, oldErr, oldOpt, oldTTY
	})
	isTerminalFn = func(*os.File) bool { return false }

	if _, ok := os.LookupEnv("XDG_CONFIG_HOME"); !ok {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	}

	var out, errOut bytes.Buffer
	setOutputOptions(&out, &errOut, outputOptions{})

	root := NewRootCmd(browse, BuildInfo{Version: "1.2.3", BuildTime: "now", GitCommit: "abc"})
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCheck_NoExpectationsListsAllFields(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")

	r := runCLI(t, nil, "", "check", path)
	if r.exitCode(t) != 0 {
		t.Fatalf("expected exit 0, got %v", r.err)
	}
	if got := strings.TrimSpace(r.stdout); got != igcaOK {
		t.Fatalf("unexpected status line:\n got %q\nwant %q", got, igcaOK)
	}
}

func TestCheck_MismatchExitsWarning(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")

	r := runCLI(t, nil, "", "check", path, "--serial", testutil.IGCASerial, "--pubkey-size", "4096")
	if code := r.exitCode(t); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if _, silent, _ := ExitCode(r.err); !silent {
		t.Fatalf("expected silent exit error")
	}
	want := "WARNING - Serial: " + testutil.IGCASerial + ", Public key size is 2048 but expected 4096 (!)"
	if got := strings.TrimSpace(r.stdout); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCheck_EnvironmentSetsExpectation(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")
	t.Setenv("CERTCHECK_SIGNATURE_ALGORITHM", "ECDSA")

	r := runCLI(t, nil, "", "check", path)
	if code := r.exitCode(t); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if got := strings.TrimSpace(r.stdout); got != "WARNING - Signature algorithm is RSA but expected ECDSA (!)" {
		t.Fatalf("got %q", got)
	}
}

func TestCheck_FlagOverridesProfile(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")
	cfg := writeConfig(t, "profiles:\n  igca:\n    serial: \"01\"\n    pubkey_size: 2048\n")

	r := runCLI(t, nil, "", "--config", cfg, "check", path, "--profile", "igca", "--serial", testutil.IGCASerial)
	if r.exitCode(t) != 0 {
		t.Fatalf("expected exit 0, got %v (stdout %q)", r.err, r.stdout)
	}
	want := "OK - Serial: " + testutil.IGCASerial + ", Public key size: 2048"
	if got := strings.TrimSpace(r.stdout); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCheck_UnknownProfileIsUsageError(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")

	r := runCLI(t, nil, "", "check", path, "--profile", "missing")
	if code := r.exitCode(t); code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if _, silent, _ := ExitCode(r.err); silent {
		t.Fatalf("usage errors should not be silent")
	}
	if !strings.Contains(r.err.Error(), `unknown profile "missing"`) {
		t.Fatalf("unexpected error %v", r.err)
	}
}

func TestCheck_ValidityThresholds(t *testing.T) {
	path := testutil.WriteDER(t, testutil.MakeIGCACert(t), "igca.der")

	// The fixture is valid for about a year, so 10000 days puts it in the critical window.
	r := runCLI(t, nil, "", "check", path, "--serial", testutil.IGCASerial, "--crit-days", "10000")
	if code := r.exitCode(t); code != 2 {
		t.Fatalf("expected exit 2, got %d (stdout %q)", code, r.stdout)
	}
	if !strings.HasPrefix(r.stdout, "CRITICAL - Serial: "+testutil.IGCASerial+", Certificate expires in ") ||
		!strings.HasSuffix(strings.TrimSpace(r.stdout), "(!!)") {
		t.Fatalf("unexpected status line %q", r.stdout)
	}
}

func TestCheck_MissingFileIsUnknown(t *testing.T) {
	r := runCLI(t, nil, "", "check", filepath.Join(t.TempDir(), "nope.der"))
	if code := r.exitCode(t); code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !strings.HasPrefix(r.stdout, "UNKNOWN - read ") {
		t.Fatalf("unexpected status line %q", r.stdout)
	}
}

func TestCheck_SourceArguments(t *testing.T) {
	r := runCLI(t, nil, "", "check")
	if code := r.exitCode(t); code != 3 || !strings.Contains(r.err.Error(), "required") {
		t.Fatalf("expected usage error, got %v", r.err)
	}

	r = runCLI(t, nil, "", "check", "a.der", "--host", "example.com")
	if code := r.exitCode(t); code != 3 || !strings.Contains(r.err.Error(), "not both") {
		t.Fatalf("expected usage error, got %v", r.err)
	}
}

func TestCheck_PFXWithPasswordFile(t *testing.T) {
	c := testutil.MakeIGCACert(t)
	pfx := testutil.WritePFX(t, c, "igca.pfx", "s3cret pass")
	pwFile := filepath.Join(t.TempDir(), "pw")
	if err := os.WriteFile(pwFile, []byte("s3cret pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, nil, "", "check", pfx, "--password-file", pwFile)
	if got := strings.TrimSpace(r.stdout); got != igcaOK {
		t.Fatalf("got %q (err %v)", got, r.err)
	}

	r = runCLI(t, nil, "s3cret pass\n", "check", pfx, "--password-stdin")
	if got := strings.TrimSpace(r.stdout); got != igcaOK {
		t.Fatalf("stdin: got %q (err %v)", got, r.err)
	}

	r = runCLI(t, nil, "", "check", pfx, "--password", "wrong")
	if code := r.exitCode(t); code != 3 || !strings.Contains(r.stdout, "incorrect password") {
		t.Fatalf("expected UNKNOWN incorrect password, got %q (code %d)", r.stdout, code)
	}
}

func TestCheck_PasswordFlagsAreExclusive(t *testing.T) {
	r := runCLI(t, nil, "", "check", "x.pfx", "--password", "a", "--password-stdin")
	if code := r.exitCode(t); code != 3 || !strings.Contains(r.err.Error(), "use only one of") {
		t.Fatalf("expected exclusivity error, got %v", r.err)
	}
}

func TestShow_PrintsFields(t *testing.T) {
	path := testutil.WritePEM(t, testutil.MakeIGCACert(t), "igca.pem")

	r := runCLI(t, nil, "", "show", path)
	if r.err != nil {
		t.Fatalf("show: %v", r.err)
	}
	for _, want := range []string{
		"Serial: " + testutil.IGCASerial,
		"Subject: " + testutil.IGCASubject,
		"Public key size: 2048",
		"Not after: ",
	} {
		if !strings.Contains(r.stdout, want) {
			t.Fatalf("expected %q in:\n%s", want, r.stdout)
		}
	}
}

func TestShow_HostUsesConfigTimeout(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, nil, "", "show", "--host", host, "--port", port)
	if r.err != nil {
		t.Fatalf("show --host: %v", r.err)
	}
	if !strings.Contains(r.stdout, "Source: "+net.JoinHostPort(host, port)) {
		t.Fatalf("unexpected output:\n%s", r.stdout)
	}

	cfg := writeConfig(t, "timeout: 1ns\n")
	r = runCLI(t, nil, "", "--config", cfg, "show", "--host", host, "--port", port)
	if r.err == nil {
		t.Fatalf("expected the configured 1ns timeout to abort the handshake, got:\n%s", r.stdout)
	}
}

func TestBatch_InvalidEndpointIsUsageError(t *testing.T) {
	for _, src := range []string{"tls://example.com:https", "tls://example.com:99999"} {
		r := runCLI(t, nil, "", "batch", src)
		if code := r.exitCode(t); code != 3 {
			t.Fatalf("%s: expected exit 3, got %d", src, code)
		}
		if _, silent, _ := ExitCode(r.err); silent || !strings.Contains(r.err.Error(), "port must be") {
			t.Fatalf("%s: expected visible port error, got %v", src, r.err)
		}
		if r.stdout != "" {
			t.Fatalf("%s: expected no status lines, got %q", src, r.stdout)
		}
	}
}

func TestBatch_LinesAndWorstExit(t *testing.T) {
	good := testutil.WriteDER(t, testutil.MakeIGCACert(t), "good.der")
	missing := filepath.Join(t.TempDir(), "missing.der")

	r := runCLI(t, nil, "", "batch", good, missing, "--serial", testutil.IGCASerial)
	if code := r.exitCode(t); code != 3 {
		t.Fatalf("expected worst exit 3, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", r.stdout)
	}
	if lines[0] != good+": OK - Serial: "+testutil.IGCASerial {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], missing+": UNKNOWN - read ") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestBatch_JSONAndMetrics(t *testing.T) {
	good := testutil.WriteDER(t, testutil.MakeIGCACert(t), "good.der")
	prom := filepath.Join(t.TempDir(), "certcheck.prom")

	r := runCLI(t, nil, "", "batch", good, "--json", "--pubkey-size", "4096", "--metrics-file", prom)
	if code := r.exitCode(t); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}

	var items []jsonItem
	if err := json.Unmarshal([]byte(r.stdout), &items); err != nil {
		t.Fatalf("decode json: %v\n%s", err, r.stdout)
	}
	if len(items) != 1 || items[0].Severity != "WARNING" || items[0].ExitCode != 1 {
		t.Fatalf("unexpected items %+v", items)
	}
	f := items[0].Findings
	if len(f) != 1 || f[0].Match || f[0].Actual != "2048" || f[0].Expected != "4096" {
		t.Fatalf("unexpected findings %+v", f)
	}

	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(data), `certcheck_severity{source="`+good+`"} 1`) {
		t.Fatalf("unexpected metrics:\n%s", data)
	}
}

func TestBrowse(t *testing.T) {
	good := testutil.WriteDER(t, testutil.MakeIGCACert(t), "good.der")

	r := runCLI(t, nil, "", "browse", good)
	if code := r.exitCode(t); code != 3 {
		t.Fatalf("expected exit 3 without browser, got %d", code)
	}

	var got []batch.Item
	browse := func(items []batch.Item, cfg config.Config) error {
		got = items
		return nil
	}
	r = runCLIWithTTY(t, browse, "browse", good)
	if r.err != nil {
		t.Fatalf("browse: %v", r.err)
	}
	if len(got) != 1 || got[0].Source.Path != good {
		t.Fatalf("unexpected items %+v", got)
	}
}

func runCLIWithTTY(t *testing.T, browse BrowseFunc, args ...string) cliResult {
	t.Helper()
	oldOut, oldErr, oldOpt, oldTTY := outStdout, outStderr, outOpt, isTerminalFn
	t.Cleanup(func() {
		outStdout, outStderr, outOpt, isTerminalFn = oldOut, oldErr, oldOpt, oldTTY
	})
	isTerminalFn = func(f *os.File) bool { return f == os.Stdout }
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	setOutputOptions(&out, &errOut, outputOptions{})
	root := NewRootCmd(browse, BuildInfo{})
	root.SetArgs(args)
	err := root.Execute()
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestVersion(t *testing.T) {
	r := runCLI(t, nil, "", "version")
	if r.err != nil {
		t.Fatalf("version: %v", r.err)
	}
	if !strings.Contains(r.stdout, "certcheck 1.2.3") || !strings.Contains(r.stdout, "git_commit: abc") {
		t.Fatalf("unexpected version output %q", r.stdout)
	}
}
