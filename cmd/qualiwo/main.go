// Command qualiwo is a terminal client for the shopping chat: the same
// cart, order and payment core the mobile screens are built on, driven
// from a REPL. Point it at the hosted backend or at a local qualiwo-stub.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/cart"
	"github.com/MuriellekPINSO/qualiwo-go/internal/chat"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/MuriellekPINSO/qualiwo-go/internal/order"
	"github.com/MuriellekPINSO/qualiwo-go/internal/payment"
)

type Config struct {
	BackendURL     string
	CallbackURL    string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

func loadConfig() *Config {
	return &Config{
		BackendURL:     getEnv("BACKEND_URL", api.DefaultBaseURL),
		CallbackURL:    getEnv("PAYMENT_CALLBACK_URL", "https://qualiwo.app/payment/callback"),
		RequestTimeout: 30 * time.Second,
		PollInterval:   order.DefaultPollInterval,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

type app struct {
	cfg     *Config
	session *chat.Session
	orders  *order.Service
	client  *api.Client

	lastProducts []domain.Product
	order        *domain.Order
	tracker      *order.Tracker
	flow         *payment.Flow
	stopTracker  context.CancelFunc
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	a := &app{
		cfg:     cfg,
		client:  client,
		session: chat.NewSession(client, cart.New()),
		orders:  order.NewService(client),
	}

	fmt.Printf("qualiwo — backend %s\n", cfg.BackendURL)
	fmt.Println("Tapez un message, ou /help pour les commandes.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}
		if strings.HasPrefix(line, "/") {
			a.command(line)
		} else {
			a.chatTurn(line)
		}
	}

	if a.stopTracker != nil {
		a.stopTracker()
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin error: %v", err)
	}
}

func (a *app) chatTurn(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()

	a.session.Send(ctx, text)
	msgs := a.session.Messages()
	last := msgs[len(msgs)-1]
	fmt.Println(last.Content)
	if len(last.Products) > 0 {
		a.lastProducts = last.Products
		for i, p := range last.Products {
			fmt.Printf("  [%d] %s — %s CFA\n", i+1, p.Name, domain.FormatAmount(p.Price))
		}
	}
}

func (a *app) command(line string) {
	fields := strings.Fields(line)
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()

	switch fields[0] {
	case "/help":
		fmt.Println(`/add N       ajouter le produit N de la dernière recherche
/cart        afficher le panier
/rm N        retirer la ligne N du panier
/submit      valider le panier en commande
/status      statut de la commande suivie
/cancel      annuler la commande
/pay M       payer (M = counter | momo)
/verify      vérifier le paiement mobile money
/quit        quitter`)

	case "/add":
		idx := argIndex(fields, len(a.lastProducts))
		if idx < 0 {
			fmt.Println("produit inconnu")
			return
		}
		a.session.Cart().Add(a.lastProducts[idx])
		a.session.SyncCartWidget()
		fmt.Printf("ajouté. %d article(s), total %s CFA\n",
			a.session.Cart().ItemCount(), domain.FormatAmount(a.session.Cart().Total()))

	case "/cart":
		c := a.session.Cart()
		if c.IsEmpty() {
			fmt.Println("Votre panier est vide")
			return
		}
		for i, l := range c.Snapshot() {
			fmt.Printf("  [%d] %s x%d — %s CFA\n", i+1, l.Product.Name, l.Quantity, domain.FormatAmount(l.Subtotal()))
		}
		fmt.Printf("  %d ligne(s), %d article(s), total %s CFA\n",
			c.LineCount(), c.ItemCount(), domain.FormatAmount(c.Total()))

	case "/rm":
		snapshot := a.session.Cart().Snapshot()
		idx := argIndex(fields, len(snapshot))
		if idx < 0 {
			fmt.Println("ligne inconnue")
			return
		}
		a.session.Cart().Remove(snapshot[idx].ID)
		a.session.SyncCartWidget()

	case "/submit":
		o, err := a.session.SubmitCart(ctx, a.orders)
		if err != nil {
			fmt.Printf("échec de la commande, réessayez: %v\n", err)
			return
		}
		a.trackOrder(o)
		fmt.Printf("Commande %s créée — %s CFA — %s\n",
			o.OrderNumber, domain.FormatAmount(o.Amount()), o.Status.Label())

	case "/status":
		if a.order == nil {
			fmt.Println("aucune commande suivie")
			return
		}
		fmt.Printf("Commande %s — %s\n", a.order.OrderNumber, a.tracker.Status().Label())

	case "/cancel":
		if a.order == nil {
			fmt.Println("aucune commande suivie")
			return
		}
		a.order.Status = a.tracker.Status()
		if err := a.orders.Cancel(ctx, a.order); err != nil {
			if errors.Is(err, order.ErrNotCancellable) {
				fmt.Println("Cette commande ne peut plus être annulée")
				return
			}
			fmt.Println(order.CancelFailureMessage(err))
			return
		}
		a.tracker.MarkCancelled()
		fmt.Println("Commande annulée")

	case "/pay":
		a.pay(ctx, fields)

	case "/verify":
		if a.flow == nil || a.flow.TransactionID() == "" {
			fmt.Println("aucun paiement en cours")
			return
		}
		outcome, err := a.flow.CheckStatus(ctx)
		if err != nil {
			fmt.Printf("vérification impossible: %v\n", err)
			return
		}
		fmt.Println(outcome.Message)

	default:
		fmt.Println("commande inconnue, /help pour la liste")
	}
}

func (a *app) pay(ctx context.Context, fields []string) {
	if a.order == nil {
		fmt.Println("aucune commande à payer")
		return
	}
	if a.flow == nil || a.flow.Step() == payment.StepDismissed {
		a.flow = payment.NewFlow(a.client, a.order, a.cfg.CallbackURL, func(method string) {
			fmt.Printf("Paiement confirmé (%s)\n", method)
		})
	}
	if len(fields) < 2 || fields[1] == "counter" {
		a.flow.SelectCounter()
		fmt.Println("Votre commande est validée. Vous pourrez régler au comptoir lors du retrait.")
		return
	}

	a.flow.SelectMobileMoney()
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Nom complet: ")
	name, _ := reader.ReadString('\n')
	fmt.Print("Téléphone: ")
	phone, _ := reader.ReadString('\n')
	a.flow.SetFullName(strings.TrimSpace(name))
	a.flow.SetPhoneNumber(strings.TrimSpace(phone))

	if err := a.flow.Initiate(ctx); err != nil {
		if errors.Is(err, payment.ErrInvalidForm) {
			nameErr, phoneErr := a.flow.FieldErrors()
			for _, e := range []string{nameErr, phoneErr} {
				if e != "" {
					fmt.Println(e)
				}
			}
			return
		}
		fmt.Println(payment.InitiateFailureMessage(err))
		return
	}
	fmt.Printf("Ouvrez la page de paiement: %s\npuis /verify pour confirmer.\n", a.flow.CheckoutURL())
}

func (a *app) trackOrder(o *domain.Order) {
	if a.stopTracker != nil {
		a.stopTracker()
	}
	a.order = o
	a.flow = nil

	a.tracker = order.NewTracker(a.orders, o, a.cfg.PollInterval, func(from, to domain.OrderStatus) {
		fmt.Printf("\n[commande %s: %s -> %s]\n> ", o.OrderNumber, from.Label(), to.Label())
	})
	ctx, cancel := context.WithCancel(context.Background())
	a.stopTracker = cancel
	go a.tracker.Run(ctx)
}

func argIndex(fields []string, max int) int {
	if len(fields) < 2 {
		return -1
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > max {
		return -1
	}
	return n - 1
}
