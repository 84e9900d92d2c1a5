package adi

import "strconv"

// DeviceType is the configuration of an ADI port, as reported by the native
// layer
type DeviceType uint8

const (
	DeviceTypeAnalogIn         DeviceType = 0
	DeviceTypeAnalogOut        DeviceType = 1
	DeviceTypeDigitalIn        DeviceType = 2
	DeviceTypeDigitalOut       DeviceType = 3
	DeviceTypeLegacyGyro       DeviceType = 10
	DeviceTypeLegacyServo      DeviceType = 12
	DeviceTypeLegacyPwm        DeviceType = 13
	DeviceTypeLegacyEncoder    DeviceType = 14
	DeviceTypeLegacyUltrasonic DeviceType = 15
	DeviceTypeUndefined        DeviceType = 255
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeAnalogIn:         "analog_in",
	DeviceTypeAnalogOut:        "analog_out",
	DeviceTypeDigitalIn:        "digital_in",
	DeviceTypeDigitalOut:       "digital_out",
	DeviceTypeLegacyGyro:       "legacy_gyro",
	DeviceTypeLegacyServo:      "legacy_servo",
	DeviceTypeLegacyPwm:        "legacy_pwm",
	DeviceTypeLegacyEncoder:    "legacy_encoder",
	DeviceTypeLegacyUltrasonic: "legacy_ultrasonic",
	DeviceTypeUndefined:        "undefined",
}

func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return "device_type(" + strconv.Itoa(int(t)) + ")"
}

// Device is anything occupying one or more ADI ports.  A device's ports all
// sit on the same expander.
type Device interface {
	// PortIndices returns the 1-based indices of the ports the device uses
	PortIndices() []uint8
	// ExpanderIndex returns the device's expander smart port, or false if
	// the device is on the brain
	ExpanderIndex() (uint8, bool)
	// DeviceType returns the device's type tag
	DeviceType() DeviceType
}
