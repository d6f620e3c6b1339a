package packages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func readFixture(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPatchScheduleKernel(t *testing.T) {
	kernel := `<?php

class Kernel extends ConsoleKernel
{
    protected function schedule(Schedule $schedule)
    {
        // $schedule->command('inspire')->hourly();
    }
}
`
	path := writeFixture(t, "Kernel.php", kernel)
	require.NoError(t, patchScheduleKernel(path))

	patched := readFixture(t, path)
	assert.NotContains(t, patched, "inspire")
	assert.Contains(t, patched, "$schedule->command('horizon:snapshot')->everyFiveMinutes();")
}

func TestPatchDuskTestCase(t *testing.T) {
	testCase := `<?php

abstract class DuskTestCase extends BaseTestCase
{
    public static function prepare()
    {
        static::startChromeDriver();
    }

    protected function driver()
    {
        $options = (new ChromeOptions)->addArguments(['--disable-gpu']);

        return RemoteWebDriver::create(
            'http://localhost:9515',
            DesiredCapabilities::chrome()->setCapability(
                ChromeOptions::CAPABILITY, $options
            )
        );
    }
}
`
	path := writeFixture(t, "DuskTestCase.php", testCase)
	require.NoError(t, patchDuskTestCase(path))

	patched := readFixture(t, path)
	assert.Contains(t, patched, "// static::startChromeDriver();")
	assert.Contains(t, patched, "'http://selenium:4444/wd/hub'")
	assert.Contains(t, patched, "->setCapability('acceptInsecureCerts', true)")
	assert.NotContains(t, patched, "localhost:9515")
}

func TestPatchTelescopeProvider(t *testing.T) {
	provider := `<?php

class TelescopeServiceProvider extends TelescopeApplicationServiceProvider
{
    public function register()
    {
        Telescope::night();
    }
}
`
	path := writeFixture(t, "TelescopeServiceProvider.php", provider)
	require.NoError(t, patchTelescopeProvider(path))

	patched := readFixture(t, path)
	assert.Contains(t, patched, `$this->app->register(\Laravel\Telescope\TelescopeServiceProvider::class);`)
	assert.Contains(t, patched, "protected function registerTelescope()")
	assert.Contains(t, patched, "Telescope::night();")
}

func TestPatchComposerDontDiscover(t *testing.T) {
	composerJSON := `{
    "extra": {
        "laravel": {
            "dont-discover": []
        }
    }
}
`
	path := writeFixture(t, "composer.json", composerJSON)
	require.NoError(t, patchComposerDontDiscover(path))

	patched := readFixture(t, path)
	assert.Contains(t, patched, `"dont-discover": [`)
	assert.Contains(t, patched, `"laravel/telescope"`)
}

func TestAppendToFile(t *testing.T) {
	path := writeFixture(t, "supervisord.conf", "[supervisord]\nnodaemon=true\n")

	require.NoError(t, appendToFile(path, "[program:horizon]\ncommand=php artisan horizon\n"))

	contents := readFixture(t, path)
	assert.Contains(t, contents, "[supervisord]")
	assert.Contains(t, contents, "nodaemon=true\n\n[program:horizon]")
}

func TestAppendIfMissing(t *testing.T) {
	path := writeFixture(t, "supervisord.conf", "[supervisord]\nnodaemon=true\n")

	require.NoError(t, appendIfMissing(path, "[program:horizon]", "[program:horizon]\ncommand=php artisan horizon\n"))
	require.NoError(t, appendIfMissing(path, "[program:horizon]", "[program:horizon]\ncommand=php artisan horizon\n"))

	contents := readFixture(t, path)
	assert.Equal(t, 1, strings.Count(contents, "[program:horizon]"))
}

func TestPatchMissingFile(t *testing.T) {
	err := patchScheduleKernel(filepath.Join(t.TempDir(), "Kernel.php"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
