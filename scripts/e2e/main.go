package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Steps:
// 1. Check the bridge is healthy
// 2. Publish the scenario messages to the broker
// 3. Wait for the bridge to store them
// 4. Query the readings and events API for the publish window
// 5. Compare against the expected rows

type reading struct {
	DeviceID string  `json:"deviceID"`
	Sensor   string  `json:"sensor"`
	Value    float64 `json:"value"`
}

type event struct {
	DeviceID  string          `json:"deviceID"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
}

type message struct {
	topic   string
	payload []byte
}

func main() {
	brokerURL := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	apiURL := flag.String("api", "http://localhost:8080", "bridge HTTP address")
	deviceID := flag.String("device", "estufa-01", "expected device id")
	wait := flag.Duration("wait", 5*time.Second, "time to let the bridge store messages")
	flag.Parse()

	if err := checkHealth(*apiURL); err != nil {
		fmt.Println("bridge is not healthy:", err)
		os.Exit(1)
	}

	start := time.Now().UTC().Add(-time.Second)
	messages := []message{
		// numeric payload is stored as a reading
		{topic: "estufa/temperatura", payload: []byte("23.5")},
		// text payload is stored as an event
		{topic: "estufa/comando", payload: []byte("ligar")},
		// empty payload is not a number, so it is an event
		{topic: "estufa/umidade", payload: []byte("")},
		// a message the bridge cannot store must not stop the next one
		{topic: "estufa/temperatura", payload: []byte{0xff, 0xfe}},
		{topic: "estufa/temperatura", payload: []byte("24.5")},
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*brokerURL).
		SetClientID(fmt.Sprintf("estufa-e2e-%d", time.Now().UnixNano())).
		SetOrderMatters(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	for _, m := range messages {
		token := client.Publish(m.topic, 1, false, m.payload)
		token.Wait()
		if err := token.Error(); err != nil {
			panic(fmt.Errorf("publish %s: %w", m.topic, err))
		}
	}
	client.Disconnect(250)
	fmt.Printf("Published %d messages\n", len(messages))

	time.Sleep(*wait)
	end := time.Now().UTC().Add(time.Second)

	failures := 0
	check := func(ok bool, format string, args ...any) {
		if ok {
			fmt.Printf("PASS "+format+"\n", args...)
			return
		}
		failures++
		fmt.Printf("FAIL "+format+"\n", args...)
	}

	var readings struct {
		Readings []reading `json:"readings"`
	}
	if err := getJSON(*apiURL, "/readings/temperatura", start, end, &readings); err != nil {
		panic(err)
	}
	check(len(readings.Readings) == 2, "temperatura readings: want 2, got %d", len(readings.Readings))
	if len(readings.Readings) == 2 {
		r := readings.Readings[0]
		check(r.Value == 23.5 && r.DeviceID == *deviceID, "scenario 1 reading: %+v", r)
		check(readings.Readings[1].Value == 24.5, "scenario 4 recovery reading: %+v", readings.Readings[1])
	}

	expectEvent := func(scenario int, eventType, payload string) {
		var events struct {
			Events []event `json:"events"`
		}
		if err := getJSON(*apiURL, "/events/"+eventType, start, end, &events); err != nil {
			panic(err)
		}
		if len(events.Events) != 1 {
			check(false, "scenario %d %s events: want 1, got %d", scenario, eventType, len(events.Events))
			return
		}
		e := events.Events[0]
		check(e.DeviceID == *deviceID && string(e.Payload) == payload,
			"scenario %d event: %s %s", scenario, e.EventType, string(e.Payload))
	}
	expectEvent(2, "comando", `{"value":"ligar"}`)
	expectEvent(3, "umidade", `{"value":""}`)

	if failures > 0 {
		fmt.Printf("E2E test failed: %d checks\n", failures)
		os.Exit(1)
	}
	fmt.Println("E2E test completed")
}

func checkHealth(base string) error {
	resp, err := http.Get(base + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return nil
}

func getJSON(base, path string, start, end time.Time, out any) error {
	u := fmt.Sprintf("%s%s?start=%s&end=%s", base, path,
		url.QueryEscape(start.Format(time.RFC3339)), url.QueryEscape(end.Format(time.RFC3339)))
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
