package util

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// OpenBrowser opens the default browser at url.
// Supports Windows 7/10/11, macOS, Linux.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 via url.dll is more reliable than `cmd /c start`,
		// especially on older Windows
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// OpenBrowserWithFallback tries OpenBrowser and falls back to per-platform
// alternatives when it fails.
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		browsers := []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
		for _, browser := range browsers {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}

// FindAvailablePort returns the first port at or after startPort that can
// be bound on localhost. After a hundred busy ports it gives up and
// returns startPort; the caller will surface the bind error.
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err != nil {
			continue
		}
		ln.Close()
		return port
	}
	return startPort
}

// FormatPercent renders an already-in-percent value with an explicit sign,
// matching the one-decimal display rounding used everywhere else.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, value)
}
