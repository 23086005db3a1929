package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(name string, args ...string) (string, error) {
	callArgs := m.Called(name, args)
	return callArgs.String(0), callArgs.Error(1)
}

func TestInstallPackage(t *testing.T) {
	r := new(MockRunner)
	r.On("Run", "sudo", []string{"installer", "-pkg", "/Volumes/gfortran/gfortran-8.2-Mojave/gfortran.pkg", "-target", "/"}).Return("installer: was successful", nil)

	err := InstallPackage(r, "/Volumes/gfortran/gfortran-8.2-Mojave/gfortran.pkg")
	assert.NoError(t, err)
	r.AssertExpectations(t)
}

func TestInstallFromDiskImage(t *testing.T) {
	image := filepath.Join(t.TempDir(), "gfortran-8.2-Mojave.dmg")
	require.NoError(t, os.WriteFile(image, []byte("dmg"), 0644))

	r := new(MockRunner)
	r.On("Run", "sudo", []string{"hdiutil", "attach", image, "-mountpoint", "/Volumes/gfortran", "-quiet", "-nobrowse"}).Return("", nil)
	r.On("Run", "sudo", []string{"installer", "-pkg", "/Volumes/gfortran/gfortran-8.2-Mojave/gfortran.pkg", "-target", "/"}).Return("", nil)
	r.On("Run", "sudo", []string{"hdiutil", "detach", "/Volumes/gfortran", "-quiet"}).Return("", nil)

	err := InstallFromDiskImage(r, image, "/Volumes/gfortran", "gfortran-8.2-Mojave/gfortran.pkg")
	require.NoError(t, err)
	r.AssertExpectations(t)

	// The scratch image is deleted after a successful install.
	_, serr := os.Stat(image)
	assert.True(t, os.IsNotExist(serr))
}

func TestInstallFromDiskImageDetachesOnInstallFailure(t *testing.T) {
	image := filepath.Join(t.TempDir(), "gfortran-6.3-Sierra.dmg")
	require.NoError(t, os.WriteFile(image, []byte("dmg"), 0644))

	r := new(MockRunner)
	r.On("Run", "sudo", []string{"hdiutil", "attach", image, "-mountpoint", "/Volumes/gfortran", "-quiet", "-nobrowse"}).Return("", nil)
	r.On("Run", "sudo", []string{"installer", "-pkg", "/Volumes/gfortran/gfortran-6.3-Sierra/gfortran.pkg", "-target", "/"}).Return("installer: failed", errors.New("exit status 1"))
	r.On("Run", "sudo", []string{"hdiutil", "detach", "/Volumes/gfortran", "-quiet"}).Return("", nil)

	err := InstallFromDiskImage(r, image, "/Volumes/gfortran", "gfortran-6.3-Sierra/gfortran.pkg")
	require.Error(t, err)
	// Even on failure the mount point was detached.
	r.AssertExpectations(t)

	// A failed install keeps the image around; nothing was consumed.
	_, serr := os.Stat(image)
	assert.NoError(t, serr)
}

func TestInstallFromDiskImageMountFailureStops(t *testing.T) {
	image := filepath.Join(t.TempDir(), "gfortran-8.2-Mojave.dmg")
	require.NoError(t, os.WriteFile(image, []byte("dmg"), 0644))

	r := new(MockRunner)
	r.On("Run", "sudo", []string{"hdiutil", "attach", image, "-mountpoint", "/Volumes/gfortran", "-quiet", "-nobrowse"}).Return("hdiutil: attach failed", errors.New("exit status 1"))

	err := InstallFromDiskImage(r, image, "/Volumes/gfortran", "gfortran-8.2-Mojave/gfortran.pkg")
	require.Error(t, err)
	// No install, no detach attempted on a mount that never happened.
	r.AssertExpectations(t)
}
