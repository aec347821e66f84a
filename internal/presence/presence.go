// Package presence bridges client connection events, delivered over Redis
// pub/sub, to the users.online flag and to per-user message channels.
//
// Clients (or the edge process terminating their connections) publish JSON
// control messages on the "presencia:control" channel:
//
//	{"evento":"conectado","token":"<jwt>"}
//	{"evento":"desconectado","token":"<jwt>"}
//	{"evento":"mensaje-personal","token":"<jwt>","para":7,"mensaje":"..."}
//
// Connect and disconnect flip the online flag of the token's user; personal
// messages are re-published on "presencia:usuario:<id>" of the addressee.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

const (
	canalControl        = "presencia:control"
	prefijoCanalUsuario = "presencia:usuario:"
)

type mensaje struct {
	Evento  string          `json:"evento"`
	Token   string          `json:"token"`
	Para    int             `json:"para"`
	Mensaje json.RawMessage `json:"mensaje"`
}

// Bridge consumes presence control messages and applies them.
type Bridge struct {
	RDB      *redis.Client
	Usuarios *repository.UserRepo
	JWTKey   string
}

func NewBridge(rdb *redis.Client, usuarios *repository.UserRepo, jwtKey string) *Bridge {
	return &Bridge{RDB: rdb, Usuarios: usuarios, JWTKey: jwtKey}
}

// Run subscribes to the control channel and processes messages until the
// context is cancelled.  Messages with missing or invalid tokens are dropped,
// mirroring the immediate disconnect the realtime layer applies.
func (b *Bridge) Run(ctx context.Context) {
	if b.RDB == nil {
		log.Println("presencia: redis no disponible, bridge desactivado")
		return
	}

	sub := b.RDB.Subscribe(ctx, canalControl)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.procesar(ctx, msg.Payload)
		}
	}
}

func (b *Bridge) procesar(ctx context.Context, payload string) {
	var m mensaje
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		log.Printf("presencia: mensaje ilegible: %v", err)
		return
	}

	valido, usuarioID := utils.ComprobarJWT(b.JWTKey, m.Token)
	if !valido || usuarioID == 0 {
		log.Printf("presencia: token inválido, evento %q descartado", m.Evento)
		return
	}

	switch m.Evento {
	case "conectado":
		if err := b.Usuarios.SetOnline(ctx, usuarioID, true); err != nil {
			log.Printf("presencia: conectar usuario %d: %v", usuarioID, err)
		}
	case "desconectado":
		if err := b.Usuarios.SetOnline(ctx, usuarioID, false); err != nil {
			log.Printf("presencia: desconectar usuario %d: %v", usuarioID, err)
		}
	case "mensaje-personal":
		if m.Para == 0 {
			return
		}
		canal := fmt.Sprintf("%s%d", prefijoCanalUsuario, m.Para)
		cuerpo, _ := json.Marshal(map[string]any{"de": usuarioID, "mensaje": m.Mensaje})
		if err := b.RDB.Publish(ctx, canal, cuerpo).Err(); err != nil {
			log.Printf("presencia: entrega a usuario %d: %v", m.Para, err)
		}
	default:
		log.Printf("presencia: evento desconocido %q", m.Evento)
	}
}
