package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// --- Configuration ScyllaDB (catalogue en lecture seule) ---
type ScyllaCatalogConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

// --- Variables Globales ---
var (
	Redis       *redis.Client
	RedisClient *redis.Client // Alias pour compatibilité
	Elastic     *elasticsearch.Client

	scyllaMu      sync.Mutex
	scyllaSession *gocql.Session
)

// ConnectDatabases initialise les connexions.
// Redis est obligatoire (c'est le stockage durable de la boutique).
// ScyllaDB et Elasticsearch sont optionnels : sans eux, le catalogue vient des
// fichiers JSON et la recherche retombe sur un parcours linéaire.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectRedis(ctx)
	connectElastic()

	log.Println("✅ Connexions bases de données prêtes")
}

// =============================================
// REDIS (stockage durable clé → blob JSON)
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	RedisClient = Redis // Alias pour compatibilité

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// SCYLLA DB (source catalogue optionnelle)
// =============================================

func loadScyllaConfig() (ScyllaCatalogConfig, bool) {
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	if keyspace == "" {
		return ScyllaCatalogConfig{}, false
	}

	return ScyllaCatalogConfig{
		Hosts:       strings.Split(os.Getenv("SCYLLA_HOSTS"), ","),
		Keyspace:    keyspace,
		Username:    os.Getenv("SCYLLA_ROLE"),
		Password:    os.Getenv("SCYLLA_PASSWORD"),
		Timeout:     5 * time.Second,
		NumConns:    10,
		Consistency: gocql.Quorum,
	}, true
}

// GetCatalogSession retourne la session ScyllaDB du catalogue, créée à la demande.
func GetCatalogSession() (*gocql.Session, error) {
	scyllaMu.Lock()
	defer scyllaMu.Unlock()

	if scyllaSession != nil {
		if err := scyllaSession.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return scyllaSession, nil
		}
		// Session invalide : on la recrée
		scyllaSession.Close()
		scyllaSession = nil
	}

	config, ok := loadScyllaConfig()
	if !ok {
		return nil, fmt.Errorf("SCYLLA_KEYSPACE non configuré")
	}

	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns
	cluster.ReconnectInterval = 1 * time.Second
	if config.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session ScyllaDB: %v", err)
	}

	scyllaSession = session
	log.Printf("✅ Session ScyllaDB ouverte sur keyspace '%s'", config.Keyspace)
	return session, nil
}

// ScyllaConfigured indique si une source catalogue ScyllaDB est déclarée dans l'env.
func ScyllaConfigured() bool {
	_, ok := loadScyllaConfig()
	return ok
}

// CloseScylla ferme la session catalogue si elle existe.
func CloseScylla() {
	scyllaMu.Lock()
	defer scyllaMu.Unlock()
	if scyllaSession != nil {
		scyllaSession.Close()
		scyllaSession = nil
		log.Println("🔌 Session ScyllaDB fermée")
	}
}

// =============================================
// ELASTICSEARCH (recherche produits, optionnel)
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche produits en mode parcours linéaire")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}
