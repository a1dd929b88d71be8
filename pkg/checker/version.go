package checker

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/notaspie/notaspie/pkg/models"
)

// minServiceVersion is the oldest LanguageTool release whose match offsets
// and replacement lists behave the way the merger expects.
const minServiceVersion = "5.0"

// supportedVersion reports whether version is at least minServiceVersion.
// LanguageTool snapshot builds ("6.4-SNAPSHOT") count as their release.
func supportedVersion(version string) (bool, error) {
	requiredVersion, err := semver.NewVersion(minServiceVersion)
	if err != nil {
		return false, fmt.Errorf("error parsing required checker version: %w", err)
	}

	thisVersion, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("error parsing checker version %q: %w", version, err)
	}

	release, err := thisVersion.SetPrerelease("")
	if err != nil {
		return false, fmt.Errorf("error parsing checker version %q: %w", version, err)
	}

	return !requiredVersion.GreaterThan(&release), nil
}

// checkServiceVersion logs once per client which service build it talks to.
func checkServiceVersion(sw models.Software) {
	if sw.Version == "" {
		log.Debug("grammar checker did not report its version")
		return
	}

	ok, err := supportedVersion(sw.Version)
	if err != nil {
		log.Warn(err)
		return
	}
	if !ok {
		log.Warnf(
			"%s %s is older than %s. corrections may be misplaced",
			sw.Name, sw.Version, minServiceVersion,
		)
		return
	}
	log.Infof("grammar checker is %s %s", sw.Name, sw.Version)
}
