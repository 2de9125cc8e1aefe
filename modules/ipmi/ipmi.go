package ipmi

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oblq/ipmifc/internal/exec"
	"go.uber.org/zap"
)

// Vendor selects the raw command set understood by the BMC.
type Vendor string

const (
	VendorDell       Vendor = "dell"
	VendorSupermicro Vendor = "supermicro"
)

// supermicro fan modes
const (
	fanModeFull = "01"
)

// IPMI is an ipmitool interface to handle fans duty-cycles.
type IPMI struct {
	// CMD is the ipmitool preamble command,
	// could run locally or on remote machines,
	// depending on the parameters, eg.: `ipmitool -I lanplus -H 10.0.0.2 -U root -P calvin`.
	// Quoted arguments are passed through bash, so shell quoting rules apply.
	CMD string `yaml:"cmd"`

	Vendor Vendor `yaml:"vendor"`

	// Sensors are the `sdr type temperature` record names
	// whose maximum is the temperature, case insensitive.
	// If empty, any record named `Temp` or containing `CPU`.
	Sensors []string `yaml:"sensors"`

	// Zones are the Supermicro fan zones to drive.
	// cpu_zone: 0x00, io_zone: 0x01.
	Zones []uint8 `yaml:"zones"`

	// TempCmd is a shell command printing a temperature in number format,
	// takes precedence over Sensors.
	TempCmd string `yaml:"temp_cmd"`

	// FanThresholds are some custom fan thresholds,
	// Noctua fans needs this for instance.
	FanThresholds map[string]*fanThreshold `yaml:"fan_thresholds"`

	runner   exec.Runner
	log      *zap.Logger
	fullMode bool
}

// New return a new IPMI instance with the default settings.
func New() *IPMI {
	return &IPMI{
		CMD:    "ipmitool",
		Vendor: VendorDell,
		Zones:  []uint8{0x00, 0x01},
	}
}

// Open validates the settings and applies the fan thresholds.
// Commands are executed by runner.
func (ipmi *IPMI) Open(ctx context.Context, runner exec.Runner, log *zap.Logger) error {
	if strings.TrimSpace(ipmi.CMD) == "" {
		ipmi.CMD = "ipmitool"
	}

	switch ipmi.Vendor {
	case VendorDell:
	case VendorSupermicro:
		if len(ipmi.Zones) == 0 {
			return fmt.Errorf("ipmi vendor %s needs at least one zone", ipmi.Vendor)
		}
	default:
		return fmt.Errorf("unknown ipmi vendor: %q", ipmi.Vendor)
	}

	ipmi.runner = runner
	ipmi.log = log

	// update ipmi fan thresholds,
	// `sudo watch ipmitool sensor` to get the current settings.
	for name, threshold := range ipmi.FanThresholds {
		threshold.Name = name
		if err := threshold.set(ctx, ipmi.command, ipmi.CMD); err != nil {
			log.Error("error setting fans threshold", zap.String("fan", name), zap.Error(err))
			continue
		}
		log.Info("fan threshold updated", zap.String("fan", name))
	}

	return nil
}

// command runs an ipmitool command line, through the shell when CMD
// holds quoted arguments, eg.: `ipmitool -P 'my pass'`.
func (ipmi *IPMI) command(ctx context.Context, cmdString string) (string, error) {
	if strings.ContainsAny(ipmi.CMD, `'"`) {
		return ipmi.runner.Pipe(ctx, cmdString)
	}
	return ipmi.runner.Command(ctx, cmdString)
}

func (ipmi *IPMI) Name() string {
	return "ipmi"
}

func (ipmi *IPMI) ReadTemperature(ctx context.Context) (int, error) {
	if ipmi.TempCmd != "" {
		return ipmi.tempFromCmd(ctx)
	}

	out, err := ipmi.command(ctx, ipmi.CMD+" sdr type temperature")
	if err != nil {
		return 0, fmt.Errorf("error reading temperature sensors: %w", err)
	}

	found := false
	max := math.Inf(-1)
	for _, r := range parseSDR(out) {
		if !r.HasValue || r.Unit != "degrees C" || !ipmi.isTempSensor(r.Name) {
			continue
		}
		found = true
		max = math.Max(max, r.Value)
	}

	if !found {
		return 0, fmt.Errorf("no temperature reading found in `%s sdr type temperature`", ipmi.CMD)
	}

	return int(math.Round(max)), nil
}

func (ipmi *IPMI) tempFromCmd(ctx context.Context) (int, error) {
	out, err := ipmi.runner.Pipe(ctx, ipmi.TempCmd)
	if err != nil {
		return 0, err
	}
	if out == "" {
		return 0, fmt.Errorf("'temp_cmd' returned an empty string: `%s`", ipmi.TempCmd)
	}

	temp, err := strconv.ParseFloat(strings.Trim(out, " ."), 64)
	if err != nil {
		return 0, fmt.Errorf("'temp_cmd' returned an invalid temperature: %w", err)
	}
	return int(math.Round(temp)), nil
}

func (ipmi *IPMI) isTempSensor(name string) bool {
	if len(ipmi.Sensors) == 0 {
		return strings.EqualFold(name, "Temp") || strings.Contains(strings.ToUpper(name), "CPU")
	}
	for _, s := range ipmi.Sensors {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

func (ipmi *IPMI) SetFanSpeed(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("invalid duty cycle %d%%", percent)
	}

	if ipmi.Vendor == VendorSupermicro {
		return ipmi.setZonesDutyCycle(ctx, uint8(percent))
	}

	// manual fan control, then the duty cycle of every fan (0xff)
	if _, err := ipmi.command(ctx, ipmi.CMD+" raw 0x30 0x30 0x01 0x00"); err != nil {
		return fmt.Errorf("error enabling manual fan control, err: %w", err)
	}

	cmdString := fmt.Sprintf("%s raw 0x30 0x30 0x02 0xff 0x%02x", ipmi.CMD, percent)
	if _, err := ipmi.command(ctx, cmdString); err != nil {
		return fmt.Errorf("error setting duty cycle to %d%%, err: %w", percent, err)
	}
	return nil
}

func (ipmi *IPMI) setZonesDutyCycle(ctx context.Context, dc uint8) error {
	if !ipmi.fullMode {
		// the BMC would override zones duty-cycles in any other mode
		if mode := ipmi.getFanMode(ctx); mode != fanModeFull {
			if err := ipmi.setFanMode(ctx, fanModeFull); err != nil {
				return err
			}
		}
		ipmi.fullMode = true
	}

	for _, zone := range ipmi.Zones {
		cmdString := fmt.Sprintf("%s raw 0x30 0x70 0x66 0x01 0x%02x 0x%02x", ipmi.CMD, zone, dc)
		if _, err := ipmi.command(ctx, cmdString); err != nil {
			return fmt.Errorf("error setting duty cycle for zone '%v' to %d%%, err: %w", zone, dc, err)
		}
	}
	return nil
}

// getFanMode return the fan mode currently used by ipmi.
func (ipmi *IPMI) getFanMode(ctx context.Context) string {
	out, err := ipmi.command(ctx, ipmi.CMD+" raw 0x30 0x45 0x00")
	if err != nil {
		ipmi.log.Warn("error getting fan mode", zap.Error(err))
	}
	return strings.TrimSpace(out)
}

// setFanMode set ipmi fan mode.
func (ipmi *IPMI) setFanMode(ctx context.Context, mode string) error {
	if _, err := ipmi.command(ctx, fmt.Sprintf("%s raw 0x30 0x45 0x01 0x%s", ipmi.CMD, mode)); err != nil {
		return fmt.Errorf("error setting fan mode to %s, err: %w", mode, err)
	}
	ipmi.log.Info("fan mode set", zap.String("mode", mode))
	return nil
}

// StatusSummary returns the temperature and fan sensor records.
func (ipmi *IPMI) StatusSummary(ctx context.Context) (string, error) {
	temps, err := ipmi.command(ctx, ipmi.CMD+" sdr type temperature")
	if err != nil {
		return "", fmt.Errorf("error reading temperature sensors: %w", err)
	}
	fans, err := ipmi.command(ctx, ipmi.CMD+" sdr type fan")
	if err != nil {
		return "", fmt.Errorf("error reading fan sensors: %w", err)
	}
	return temps + "\n" + fans, nil
}

// Close is a no-op, ipmitool holds no session between commands.
func (ipmi *IPMI) Close() error {
	return nil
}
