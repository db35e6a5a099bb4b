package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/filex"
	"github.com/annoti/annoti/internal/settings"
)

// reportErr flattens an error to a user-facing message. This is the only
// place sentinel errors become display strings.
func (a *App) reportErr(err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, common.ErrUnsupportedVersion):
		fmt.Fprintln(a.out, "The package was produced by an unsupported version.")
	case errors.Is(err, common.ErrMalformedPackage):
		fmt.Fprintln(a.out, "The file is not a valid annotation package.")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err)
	}
	return err
}

func (a *App) ShowUser(ctx context.Context) error {
	user, err := a.users.Current(ctx)
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "%s (%s)\n", user.Name, user.ID)
	return nil
}

func (a *App) Rename(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "New name:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	user, err := a.users.Rename(ctx, name)
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Renamed to %s\n", user.Name)
	return nil
}

func (a *App) Reroll(ctx context.Context) error {
	user, err := a.users.Rename(ctx, a.users.RandomName())
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Renamed to %s\n", user.Name)
	return nil
}

func (a *App) SaveDocument(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Document path:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return a.reportErr(err)
	}
	doc, err := a.documents.Save(ctx, path, string(content))
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Saved %s (%s, checksum %s)\n", doc.Path, doc.ID, doc.Checksum)
	return nil
}

func (a *App) ShowDocument(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Document path:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	doc, err := a.documents.Get(ctx, path)
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "%s\n  id: %s\n  checksum: %s\n  modified: %d\n",
		doc.Path, doc.ID, doc.Checksum, doc.LastModified)
	return nil
}

func (a *App) ListAnnotations(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Document path:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	doc, err := a.documents.Get(ctx, path)
	if err != nil {
		return a.reportErr(err)
	}
	anns, err := a.annotations.ListByDocument(ctx, doc.ID)
	if err != nil {
		return a.reportErr(err)
	}
	if len(anns) == 0 {
		fmt.Fprintln(a.out, "No annotations.")
		return nil
	}
	for _, ann := range anns {
		note := ""
		if ann.Note != nil {
			note = " note: " + *ann.Note
		}
		fmt.Fprintf(a.out, "%s  %q by %s%s\n", ann.ID, ann.Text, ann.UserName, note)
	}
	return nil
}

func (a *App) DeleteAnnotation(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Annotation id:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	if err := a.annotations.Delete(ctx, id); err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Export(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Annotation id:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	docPath, err := GetSimpleText(a.reader, "Document path:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	outPath, err := GetSimpleText(a.reader, "Output file:", a.out)
	if err != nil {
		return a.reportErr(err)
	}

	data, err := a.exchange.Export(ctx, id, docPath)
	if err != nil {
		return a.reportErr(err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Exported to %s\n", outPath)
	return nil
}

func (a *App) Import(ctx context.Context) error {
	pkgPath, err := GetSimpleText(a.reader, "Package file:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	docPath, err := GetSimpleText(a.reader, "Target document path:", a.out)
	if err != nil {
		return a.reportErr(err)
	}

	data, err := os.ReadFile(pkgPath)
	if err != nil {
		return a.reportErr(err)
	}
	n, err := a.exchange.Import(ctx, data, docPath)
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Imported %d annotation(s)\n", n)
	return nil
}

func (a *App) Migrate(ctx context.Context) error {
	dir, err := GetSimpleText(a.reader, "Directory to scan:", a.out)
	if err != nil {
		return a.reportErr(err)
	}
	res, err := a.migrator.Run(ctx, dir)
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "Migrated %d annotation(s), %d error(s)\n", res.Migrated, res.Errors)
	return nil
}

func (a *App) ShowSettings(ctx context.Context) error {
	rec, err := settings.Load(filex.SettingsPath(a.config.DataDir))
	if err != nil {
		return a.reportErr(err)
	}
	fmt.Fprintf(a.out, "version: %s\nuser: %s\nhighlight: %s %s\nlanguage: %s\n",
		rec.Version, rec.User.Name,
		rec.Editor.DefaultHighlightColor, rec.Editor.DefaultHighlightType,
		rec.I18n.Language)
	return nil
}
