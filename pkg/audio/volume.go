package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Volume is the master volume of an endpoint as OS-native scalar within
// [0.0..1.0].
type Volume float64

func (this Volume) Clamped() Volume {
	if this < 0 {
		return 0
	}
	if this > 1 {
		return 1
	}
	return this
}

func (this Volume) Percent() int {
	return int(math.Round(float64(this.Clamped()) * 100))
}

func (this Volume) String() string {
	return fmt.Sprintf("%d%%", this.Percent())
}

// Set parses plain as volume. Accepted forms: "55" and "55%" (percent) as
// well as "0.55" (scalar). Plain integers are always treated as percent.
func (this *Volume) Set(plain string) error {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return fmt.Errorf("illegal-volume: empty")
	}

	percent := strings.HasSuffix(plain, "%")
	plain = strings.TrimSuffix(plain, "%")

	v, err := strconv.ParseFloat(plain, 64)
	if err != nil {
		return fmt.Errorf("illegal-volume: %s", plain)
	}

	if !percent && strings.Contains(plain, ".") {
		// Scalar form.
		if v < 0 || v > 1 {
			return fmt.Errorf("illegal-volume: %s is outside of [0.0..1.0]", plain)
		}
		*this = Volume(v)
		return nil
	}

	if v < 0 || v > 100 {
		return fmt.Errorf("illegal-volume: %s is outside of [0..100]", plain)
	}
	*this = Volume(v / 100)
	return nil
}

func (this Volume) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Volume) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

func ParseVolume(plain string) (result Volume, err error) {
	err = result.Set(plain)
	return result, err
}

// An Adjustment is either an absolute target volume or a relative change,
// depending on whether the input carried a leading sign.
type Adjustment struct {
	Value    Volume
	Relative bool
	Decrease bool
}

func ParseAdjustment(plain string) (result Adjustment, err error) {
	plain = strings.TrimSpace(plain)
	switch {
	case strings.HasPrefix(plain, "+"):
		result.Relative = true
		plain = plain[1:]
	case strings.HasPrefix(plain, "-"):
		result.Relative = true
		result.Decrease = true
		plain = plain[1:]
	}
	err = result.Value.Set(plain)
	return result, err
}

func (this Adjustment) ApplyTo(current Volume) Volume {
	if !this.Relative {
		return this.Value.Clamped()
	}
	if this.Decrease {
		return (current - this.Value).Clamped()
	}
	return (current + this.Value).Clamped()
}
