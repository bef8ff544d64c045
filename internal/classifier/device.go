package classifier

// DeviceResolver maps an inbound topic to the device identifier stored
// with its record.
type DeviceResolver interface {
	ResolveDevice(topic string) string
}

// StaticDevice attributes every message to one configured device.
type StaticDevice string

func (d StaticDevice) ResolveDevice(string) string {
	return string(d)
}

type DeviceResolverFunc func(topic string) string

func (f DeviceResolverFunc) ResolveDevice(topic string) string {
	return f(topic)
}
