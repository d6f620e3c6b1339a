package packages

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// The add-on installers patch a handful of files Laravel generates. Each
// patch is a bounded regex replacement against a known fragment of the
// stock source.

var (
	inspireScheduleRegex = regexp.MustCompile(` *` + regexp.QuoteMeta(`// $schedule->command('inspire')->hourly();`))

	remoteWebDriverRegex = regexp.MustCompile(`(?s) *return RemoteWebDriver::create\(.*\);\n`)

	telescopeRegisterRegex = regexp.MustCompile(` *` + regexp.QuoteMeta(`public function register()`))

	dontDiscoverRegex = regexp.MustCompile(` *` + regexp.QuoteMeta(`"dont-discover": []`) + `\n`)
)

const horizonSchedule = `        $schedule->command('horizon:snapshot')->everyFiveMinutes();`

const seleniumWebDriver = `        return RemoteWebDriver::create(
            'http://selenium:4444/wd/hub',
            DesiredCapabilities::chrome()
                ->setCapability(ChromeOptions::CAPABILITY, $options)
                ->setCapability('acceptInsecureCerts', true)
        );
`

const telescopeRegister = `    public function register()
    {
        if ($this->app->isLocal()) {
            $this->app->register(\Laravel\Telescope\TelescopeServiceProvider::class);
            $this->registerTelescope();
        }
    }

    /**
     * Register telescope services.
     *
     * @return void
     */
    protected function registerTelescope()`

const telescopeDontDiscover = `            "dont-discover": [
                "laravel/telescope"
            ]
`

// patchScheduleKernel swaps the commented inspire schedule in
// app/Console/Kernel.php for the horizon snapshot schedule.
func patchScheduleKernel(path string) error {
	return patchFile(path, func(contents string) string {
		return inspireScheduleRegex.ReplaceAllLiteralString(contents, horizonSchedule)
	})
}

// patchDuskTestCase points tests/DuskTestCase.php at the selenium service
// and stops it from starting a local chromedriver.
func patchDuskTestCase(path string) error {
	return patchFile(path, func(contents string) string {
		contents = strings.Replace(contents,
			`static::startChromeDriver();`,
			`// static::startChromeDriver();`,
			1,
		)
		return remoteWebDriverRegex.ReplaceAllLiteralString(contents, seleniumWebDriver)
	})
}

// patchTelescopeProvider restricts telescope registration to the local
// environment in app/Providers/TelescopeServiceProvider.php.
func patchTelescopeProvider(path string) error {
	return patchFile(path, func(contents string) string {
		return telescopeRegisterRegex.ReplaceAllLiteralString(contents, telescopeRegister)
	})
}

// patchComposerDontDiscover stops composer from auto-discovering telescope
// in composer.json.
func patchComposerDontDiscover(path string) error {
	return patchFile(path, func(contents string) string {
		return dontDiscoverRegex.ReplaceAllLiteralString(contents, telescopeDontDiscover)
	})
}

// appendIfMissing appends content to path unless marker already appears in
// the file. The supervisord template may already carry the horizon program
// section, in which case appending it again would duplicate the section.
func appendIfMissing(path, marker, content string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.Contains(string(data), marker) {
		return nil
	}

	return appendToFile(path, content)
}

// appendToFile appends content to path, separated by a newline.
func appendToFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString("\n" + content); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}

	return nil
}

func patchFile(path string, transform func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	patched := transform(string(data))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
