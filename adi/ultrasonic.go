package adi

// Ultrasonic is a legacy ultrasonic range finder.  It takes two ports on the
// same expander: ping drives the transmitter and echo listens for the return.
type Ultrasonic struct {
	drv  Driver
	raw  int32
	ping Port
	echo Port
}

// NewUltrasonic configures the sensor on ping and echo.  The ports must share
// an expander.
func NewUltrasonic(d Driver, ping, echo Port) (*Ultrasonic, error) {
	if ping.InternalExpanderIndex() != echo.InternalExpanderIndex() {
		return nil, ErrExpanderPortMismatch
	}

	raw, errno := d.UltrasonicInit(ping.InternalExpanderIndex(), ping.Index(), echo.Index())
	raw, err := bailOn("ultrasonic init", raw, errno)
	if err != nil {
		return nil, err
	}

	return &Ultrasonic{drv: d, raw: raw, ping: ping, echo: echo}, nil
}

// Distance returns the distance from the sensor's mounting point to the
// nearest surface, in millimeters.  Round or soft objects can throw the
// reading off.
func (u *Ultrasonic) Distance() (float64, error) {
	raw, err := u.RawDistance()
	if err != nil {
		return 0, err
	}
	return float64(raw) / 10.0, nil
}

// RawDistance returns the reading in the sensor's native unit, ten-thousandths
// of a meter
func (u *Ultrasonic) RawDistance() (int32, error) {
	raw, errno := u.drv.UltrasonicGet(u.raw)
	return bailOn("ultrasonic get", raw, errno)
}

func (u *Ultrasonic) PingPort() Port { return u.ping }
func (u *Ultrasonic) EchoPort() Port { return u.echo }

// PortIndex returns the ping and echo port indices
func (u *Ultrasonic) PortIndex() (ping, echo uint8) {
	return u.ping.Index(), u.echo.Index()
}

func (u *Ultrasonic) PortIndices() []uint8 {
	return []uint8{u.ping.Index(), u.echo.Index()}
}

func (u *Ultrasonic) ExpanderIndex() (uint8, bool) {
	return u.ping.ExpanderIndex()
}

func (u *Ultrasonic) DeviceType() DeviceType {
	return DeviceTypeLegacyUltrasonic
}
