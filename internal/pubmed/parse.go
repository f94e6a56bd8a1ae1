package pubmed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
)

// XML shapes for the subset of the PubmedArticleSet DTD this tool reads.

type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string  `xml:"PMID"`
	Article article `xml:"Article"`
}

type article struct {
	Journal     journal       `xml:"Journal"`
	Title       string        `xml:"ArticleTitle"`
	Pagination  pagination    `xml:"Pagination"`
	ELocationID []eLocationID `xml:"ELocationID"`
	Authors     []author      `xml:"AuthorList>Author"`
}

type journal struct {
	Title string       `xml:"Title"`
	Issue journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	Volume  string  `xml:"Volume"`
	Issue   string  `xml:"Issue"`
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	// MedlineDate appears instead of Year/Month for irregular dates,
	// e.g. "2019 Nov-Dec".
	MedlineDate string `xml:"MedlineDate"`
}

type pagination struct {
	MedlinePgn string `xml:"MedlinePgn"`
}

type eLocationID struct {
	Type  string `xml:"EIdType,attr"`
	Value string `xml:",chardata"`
}

type author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

// fullName returns "ForeName LastName", or the collective name for group
// authorships.
func (a author) fullName() string {
	if a.CollectiveName != "" {
		return a.CollectiveName
	}
	if a.ForeName == "" {
		return a.LastName
	}
	return a.ForeName + " " + a.LastName
}

// parseArticleSet converts an EFetch XML response into records keyed by
// PMID.
func parseArticleSet(data []byte) (map[string]bibtex.Record, error) {
	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}

	records := make(map[string]bibtex.Record, len(set.Articles))
	for _, pa := range set.Articles {
		if pa.Citation.PMID == "" {
			continue
		}
		records[pa.Citation.PMID] = articleToRecord(pa.Citation.Article)
	}
	return records, nil
}

// articleToRecord maps a PubMed article to a BibTeX record. Only fields the
// article actually carries are set.
func articleToRecord(a article) bibtex.Record {
	rec := bibtex.NewRecord(bibtex.DefaultEntryType)

	if names := formatAuthors(a.Authors); names != "" {
		rec.Set("author", names)
	}
	if title := strings.TrimSuffix(strings.TrimSpace(a.Title), "."); title != "" {
		rec.Set("title", title)
	}
	if a.Journal.Title != "" {
		rec.Set("journal", a.Journal.Title)
	}

	year, month := a.Journal.Issue.PubDate.yearMonth()
	if year != "" {
		rec.Set("year", year)
	}
	if month != "" {
		rec.Set("month", month)
	}

	if a.Journal.Issue.Volume != "" {
		rec.Set("volume", a.Journal.Issue.Volume)
	}
	if a.Journal.Issue.Issue != "" {
		rec.Set("number", a.Journal.Issue.Issue)
	}
	if a.Pagination.MedlinePgn != "" {
		rec.Set("pages", a.Pagination.MedlinePgn)
	}
	for _, loc := range a.ELocationID {
		if strings.EqualFold(loc.Type, "doi") && loc.Value != "" {
			rec.Set("doi", strings.TrimSpace(loc.Value))
		}
	}

	return rec
}

// yearMonth extracts year and month, falling back to the free-form
// MedlineDate ("2019 Nov-Dec" yields year 2019, month Nov).
func (d pubDate) yearMonth() (year, month string) {
	if d.Year != "" {
		return d.Year, d.Month
	}

	fields := strings.Fields(d.MedlineDate)
	if len(fields) > 0 {
		year = fields[0]
	}
	if len(fields) > 1 {
		month, _, _ = strings.Cut(fields[1], "-")
	}
	return year, month
}

// formatAuthors joins authors as "First Last and First Last", the BibTeX
// author-list convention the citation key builder expects.
func formatAuthors(authors []author) string {
	var names []string
	for _, a := range authors {
		if name := a.fullName(); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " and ")
}
