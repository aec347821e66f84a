package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartRegistroConsumer connects to RabbitMQ, declares the entradas.registro
// queue (durable) and consumes gate events, appending each one to
// logs/entradas.log.  It runs a reconnect loop with backoff and never
// returns; processing errors reject the offending message without requeue so
// the loop keeps draining.
func StartRegistroConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("registro-consumer: dial failed: %v; reintento en %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("registro-consumer: consume loop ended: %v; reconectando", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("registro-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(registroQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(registroQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("registro-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev RegistroEntradaEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "entradas.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var line string
	switch ev.Evento {
	case EventoSalida:
		line = fmt.Sprintf("[%s] Salida registrada | entrada_id=%d | fecha_salida=%s | usuario=%d\n",
			ev.RegistradoEn, ev.EntradaID, ev.FechaSalida, ev.Usuario)
	default:
		line = fmt.Sprintf("[%s] Entrada registrada | entrada_id=%d | conductor=%q | empresa=%q | matricula=%s | usuario=%d\n",
			ev.RegistradoEn, ev.EntradaID, ev.NombreConductor, ev.Empresa, ev.Matricula, ev.Usuario)
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
