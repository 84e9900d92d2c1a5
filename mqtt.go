//go:build !tinygo

package sonar

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mqttSocket publishes broadcast packets on a topic and feeds packets
// published on topic/cmd into the bus
type mqttSocket struct {
	socket
	client   mqtt.Client
	topic    string
	announce *Packet
}

const mqttTimeout = 5 * time.Second

func (m *mqttSocket) Close() {
	m.client.Disconnect(250)
	m.bus.unplug(m)
}

func (m *mqttSocket) Send(pkt *Packet) error {
	token := m.client.Publish(m.topic, 0, false, pkt.message)
	if !token.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("publish to %s timed out", m.topic)
	}
	return token.Error()
}

func (m *mqttSocket) onCommand(_ mqtt.Client, msg mqtt.Message) {
	var pkt = &Packet{bus: m.bus, src: m, message: msg.Payload()}
	m.bus.receive(pkt)
}

func (m *mqttSocket) onConnect(client mqtt.Client) {
	fmt.Printf("Connected %s\r\n", m)
	token := client.Subscribe(m.topic+"/cmd", 0, m.onCommand)
	if token.WaitTimeout(mqttTimeout) && token.Error() != nil {
		fmt.Printf("Subscribe error %s: %s\r\n", m, token.Error())
	}
	// announce on every (re)connect
	m.Send(m.announce)
}

// DialMQTT connects to an MQTT broker.  Broadcast packets are published on
// topic, and packets published on topic/cmd are handled like packets from
// any other socket.
func (s *Server) DialMQTT(broker, user, passwd, topic string) (Socketer, error) {
	m := &mqttSocket{topic: topic}
	m.socket = socket{"mqtt:" + broker + "::" + topic, SocketFlagBcast, s.bus}
	m.announce = s.node.Announce()

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(s.node.Model() + "-" + s.node.Id()).
		SetUsername(user).
		SetPassword(passwd).
		SetAutoReconnect(true).
		SetOnConnectHandler(m.onConnect).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			fmt.Printf("Connection lost %s: %s\r\n", m, err.Error())
		})

	m.client = mqtt.NewClient(opts)
	token := m.client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return nil, fmt.Errorf("connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}

	s.bus.plugin(m)
	return m, nil
}
