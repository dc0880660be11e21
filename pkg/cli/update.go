package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "Fepozopo/pixfx"

// githubAPI is the releases endpoint base; tests point it at a local server.
var githubAPI = "https://api.github.com"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatest queries the GitHub Releases API and returns the release with
// the highest semver tag, skipping drafts and prereleases. It prefers assets
// whose names mention the running platform. If no suitable release is found
// it returns (nil, false, nil).
func detectLatest(client *http.Client, repo, goos, goarch string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/releases", githubAPI, repo)
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		HTMLURL    string `json:"html_url"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			name := strings.ToLower(a.Name)
			if strings.Contains(name, goos) && strings.Contains(name, goarch) {
				assetURL = a.BrowserDownloadURL
				break
			}
		}
		candidates = append(candidates, selfupdate.Release{
			Version:  v,
			AssetURL: assetURL,
			URL:      r.HTMLURL,
		})
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	return &candidates[0], true, nil
}

func newUpdateCmd() *cobra.Command {
	var (
		checkOnly bool
		yes       bool
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and optionally install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkForUpdates(cmd.InOrStdin(), cmd.OutOrStdout(), checkOnly, yes)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update exists")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking")
	return cmd
}

func checkForUpdates(in io.Reader, out io.Writer, checkOnly, yes bool) error {
	current, err := semver.Parse(strings.TrimPrefix(Version, "v"))
	if err != nil {
		return fmt.Errorf("could not parse current version %q: %w", Version, err)
	}
	fmt.Fprintf(out, "Current version: %s\n", current)

	client := &http.Client{Timeout: 10 * time.Second}
	latest, found, err := detectLatest(client, updateRepo, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found {
		fmt.Fprintf(out, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)
	if !latest.Version.GT(current) {
		fmt.Fprintln(out, "You are already running the latest version.")
		return nil
	}
	if checkOnly {
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "Version %s has no download for this platform; see %s\n", latest.Version, latest.URL)
		return nil
	}
	if !yes {
		fmt.Fprintf(out, "Update to %s now? (y/N): ", latest.Version)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed reading input: %w", err)
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to %s.\n", latest.Version)
	return nil
}
