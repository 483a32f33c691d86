package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"hunterprice/internal/catalog"
	"hunterprice/internal/config"
	"hunterprice/internal/domain"
	"hunterprice/internal/pricehistory"
)

// searchCommand prints one page of results without starting the TUI
func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search products and print one page of results",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to print, starting at 0",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Results per page (defaults to page_size from the config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return errors.New("search needs a query")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			size := c.Int("size")
			if size <= 0 {
				size = e.cfg.PageSize
			}
			page := c.Int("page")
			res, err := e.client.SearchPage(ctx, query, page, size)
			if err != nil {
				return errors.New(catalog.ErrorMessage(err, "la búsqueda falló"))
			}
			return printPage(os.Stdout, query, page, res.Items, res.HasNextPage)
		},
	}
}

// imageCommand finds products that look like a photo
func imageCommand() *cli.Command {
	return &cli.Command{
		Name:      "image",
		Usage:     "Find products similar to a photo",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("image needs a file")
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			items, err := e.client.SearchByImage(ctx, filepath.Base(path), f)
			if err != nil {
				return errors.New(catalog.ErrorMessage(err, "no se pudo buscar por imagen"))
			}
			return printMatches(os.Stdout, items)
		},
	}
}

// printMatches lists image matches; they come in a single unpaged batch
func printMatches(w io.Writer, items []domain.ProductSummary) error {
	return printPage(w, "", 0, items, false)
}

func printPage(w io.Writer, query string, page int, items []domain.ProductSummary, hasNext bool) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No se encontró ningún resultado en base a tu búsqueda.")
		return err
	}
	for i, p := range items {
		brand := p.Brand
		if brand == "" {
			brand = "Sin marca"
		}
		if _, err := fmt.Fprintf(w, "%3d. %s (%s)  [%s]\n", i+1, p.DisplayName, brand, p.ID); err != nil {
			return err
		}
	}
	if hasNext {
		_, err := fmt.Fprintf(w, "\nMás resultados: hunterprice search --page %d %q\n", page+1, query)
		return err
	}
	return nil
}

// historyCommand prints the price history report of a product
func historyCommand() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Print the price history of a product",
		ArgsUsage: "<product-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store", Usage: "Only show prices of this store"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id := strings.TrimSpace(c.Args().First())
			if id == "" {
				return errors.New("history needs a product id")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			detail, err := e.client.ProductDetail(ctx, id)
			if err != nil {
				return errors.New(catalog.ErrorMessage(err, "no se pudo cargar el producto"))
			}
			points, err := e.client.PriceHistory(ctx, id)
			if err != nil {
				return errors.New(catalog.ErrorMessage(err, "no se pudo cargar el historial de precios"))
			}
			fmt.Print(pricehistory.Report(detail.Name, points, c.String("store")))
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			in := bufio.NewReader(os.Stdin)
			email := c.String("email")
			if email == "" {
				if email, err = prompt(in, "Email: "); err != nil {
					return err
				}
			}
			password, err := readPassword(in, "Contraseña: ")
			if err != nil {
				return err
			}

			user, err := e.client.Login(ctx, email, password)
			if err != nil {
				return errors.New(catalog.ErrorMessage(err, "no se pudo iniciar sesión"))
			}
			if err := e.sessions.Save(user); err != nil {
				return err
			}
			fmt.Printf("Sesión iniciada como %s\n", user.Name)
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			in := bufio.NewReader(os.Stdin)
			var s catalog.Signup
			if s.Name, err = prompt(in, "Nombre: "); err != nil {
				return err
			}
			if s.Email, err = prompt(in, "Email: "); err != nil {
				return err
			}
			if s.Gender, err = prompt(in, "Género (opcional): "); err != nil {
				return err
			}
			if s.Password, err = readPassword(in, "Contraseña: "); err != nil {
				return err
			}

			if err := e.client.Register(ctx, s); err != nil {
				return errors.New(catalog.ErrorMessage(err, "no se pudo crear la cuenta"))
			}
			fmt.Println("Cuenta creada. Inicia sesión con: hunterprice login")
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the saved session",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("Sesión cerrada")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in user",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			if e.user == nil {
				fmt.Println("Invitado (sin sesión)")
				return nil
			}
			fmt.Printf("%s (id %s)\n", e.user.Name, e.user.ID)
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					svc := configService(c)
					if _, err := os.Stat(svc.Path()); err == nil && !c.Bool("force") {
						return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
					}
					if err := svc.Save(config.DefaultConfig()); err != nil {
						return err
					}
					fmt.Printf("Configuración escrita en %s\n", svc.Path())
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the configuration file path",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(configService(c).Path())
					return nil
				},
			},
		},
	}
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo when stdin is a terminal
func readPassword(in *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(in, label)
	}
	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
