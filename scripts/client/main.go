package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Simulates the greenhouse controller: periodic temperatura/umidade
// readings and an occasional comando event.
func main() {
	brokerURL := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	prefix := flag.String("prefix", "estufa", "topic prefix")
	interval := flag.Duration("interval", 2*time.Second, "publish interval")
	count := flag.Int("count", 0, "rounds to publish, 0 runs until interrupted")
	flag.Parse()

	opts := mqtt.NewClientOptions().
		AddBroker(*brokerURL).
		SetClientID(fmt.Sprintf("estufa-sim-%d", time.Now().UnixNano()))
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer client.Disconnect(250)
	fmt.Println("Connected to", *brokerURL)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	temperature, humidity := 24.0, 60.0
	commands := []string{"ligar", "desligar"}
	for round := 1; *count == 0 || round <= *count; round++ {
		temperature += rand.Float64() - 0.5
		humidity += (rand.Float64() - 0.5) * 2

		publish(client, *prefix+"/temperatura", strconv.FormatFloat(temperature, 'f', 1, 64))
		publish(client, *prefix+"/umidade", strconv.FormatFloat(humidity, 'f', 1, 64))
		if round%5 == 0 {
			publish(client, *prefix+"/comando", commands[(round/5)%len(commands)])
		}

		select {
		case <-sigs:
			return
		case <-ticker.C:
		}
	}
}

func publish(client mqtt.Client, topic, payload string) {
	token := client.Publish(topic, 1, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		fmt.Printf("publish %s failed: %v\n", topic, err)
		return
	}
	fmt.Printf("published %s = %q\n", topic, payload)
}
