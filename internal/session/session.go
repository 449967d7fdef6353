// Package session porte le registre des utilisateurs et la session courante.
// Les échecs métier (email déjà pris, mot de passe faible, identifiants
// invalides) sont des Result affichables, jamais des erreurs Go.
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"vegefood_back_end/internal/models"
	"vegefood_back_end/internal/storage"
)

// Clés de stockage durable. currentUser et authToken sont namespacés par
// utilisateur côté serveur ; le registre est global.
const (
	keyUsers       = "registeredUsers"
	keyCurrentUser = "currentUser"
	keyAuthToken   = "authToken"
)

// Listener reçoit l'utilisateur courant après chaque changement de session (nil au logout).
type Listener func(*models.User)

// Store détient le registre et les sessions. Construit explicitement avec son
// stockage durable, sans état global.
type Store struct {
	mu        sync.Mutex
	store     storage.Store
	listeners []Listener
}

func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// Subscribe enregistre un listener notifié à chaque login/logout.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Register ajoute un utilisateur au registre durable.
// Échoue si l'email est déjà pris ou si le mot de passe fait moins de 6 caractères.
func (s *Store) Register(ctx context.Context, username, email, password string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.registeredUsers(ctx)
	for _, u := range users {
		if u.Email == email {
			return models.Result{Success: false, Message: "Un compte avec cet email existe déjà"}
		}
	}

	if len(password) < 6 {
		return models.Result{Success: false, Message: "Le mot de passe doit faire au moins 6 caractères"}
	}

	// Mot de passe stocké en clair : comportement volontairement repris de la
	// boutique d'origine, ce n'est pas un mécanisme de sécurité.
	users = append(users, models.User{Username: username, Email: email, Password: password})
	s.persistUsers(ctx, users)

	return models.Result{Success: true, Message: "Inscription réussie ! Vous pouvez vous connecter."}
}

// Login vérifie email + mot de passe (comparaison exacte) et ouvre la session :
// utilisateur courant sans mot de passe, jeton de session, publication aux listeners.
func (s *Store) Login(ctx context.Context, email, password string) (models.Result, string) {
	s.mu.Lock()

	var found *models.User
	for _, u := range s.registeredUsers(ctx) {
		if u.Email == email && u.Password == password {
			user := u
			found = &user
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return models.Result{Success: false, Message: "Email ou mot de passe incorrect"}, ""
	}

	token, err := GenerateToken(found.Email)
	if err != nil {
		s.mu.Unlock()
		log.Printf("❌ Erreur génération jeton pour %s: %v", email, err)
		return models.Result{Success: false, Message: "Erreur serveur"}, ""
	}

	public := found.Public()
	userStore := storage.ForUser(s.store, public.Email)
	if data, err := json.Marshal(public); err == nil {
		if err := userStore.Set(ctx, keyCurrentUser, string(data)); err != nil {
			log.Printf("⚠️ Sauvegarde session impossible: %v", err)
		}
	}
	if err := userStore.Set(ctx, keyAuthToken, token); err != nil {
		log.Printf("⚠️ Sauvegarde jeton impossible: %v", err)
	}
	s.mu.Unlock()

	s.publish(&public)
	return models.Result{Success: true, Message: "Connexion réussie !"}, token
}

// Logout ferme la session de l'utilisateur et publie nil.
func (s *Store) Logout(ctx context.Context, email string) {
	s.mu.Lock()
	userStore := storage.ForUser(s.store, email)
	if err := userStore.Del(ctx, keyCurrentUser); err != nil {
		log.Printf("⚠️ Suppression session impossible: %v", err)
	}
	if err := userStore.Del(ctx, keyAuthToken); err != nil {
		log.Printf("⚠️ Suppression jeton impossible: %v", err)
	}
	s.mu.Unlock()

	s.publish(nil)
}

// IsAuthenticated est vrai si l'enregistrement de session ET le jeton sont
// tous deux présents dans le stockage durable.
func (s *Store) IsAuthenticated(ctx context.Context, email string) bool {
	userStore := storage.ForUser(s.store, email)
	_, hasUser := userStore.Get(ctx, keyCurrentUser)
	_, hasToken := userStore.Get(ctx, keyAuthToken)
	return hasUser && hasToken
}

// CurrentUser retourne la projection session (sans mot de passe) de l'utilisateur connecté.
func (s *Store) CurrentUser(ctx context.Context, email string) (*models.User, bool) {
	raw, ok := storage.ForUser(s.store, email).Get(ctx, keyCurrentUser)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// registeredUsers lit le registre durable ; un blob absent ou corrompu vaut registre vide.
func (s *Store) registeredUsers(ctx context.Context) []models.User {
	raw, ok := s.store.Get(ctx, keyUsers)
	if !ok {
		return nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		log.Printf("⚠️ Registre utilisateurs illisible, réinitialisé: %v", err)
		return nil
	}
	return users
}

func (s *Store) persistUsers(ctx context.Context, users []models.User) {
	data, err := json.Marshal(users)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, keyUsers, string(data)); err != nil {
		log.Printf("⚠️ Sauvegarde registre utilisateurs impossible: %v", err)
	}
}

func (s *Store) publish(user *models.User) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(user)
	}
}
