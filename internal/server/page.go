package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/nexuszen/quotation-studio/internal/editor"
	"github.com/nexuszen/quotation-studio/internal/invoice"
	"github.com/nexuszen/quotation-studio/internal/render"
)

type pageField struct {
	Path      string
	Label     string
	Value     string
	Multiline bool
}

type pageGroup struct {
	Title  string
	Fields []pageField
}

type pageItem struct {
	Index              int
	Description        string
	Quantity           int
	Price              string
	DiscountPercentage string
	DiscountAmount     string
	SACCode            string
}

type pageTerm struct {
	Index int
	Text  string
}

type pageData struct {
	Title      string
	Stylesheet template.CSS
	Groups     []pageGroup
	Items      []pageItem
	Terms      []pageTerm
	HasLogo    bool
	HasSign    bool
	Sheet      template.HTML
	PDFEnabled bool
	Revision   uint64
}

type fieldLabel struct {
	field     editor.Field
	label     string
	multiline bool
}

var pageGroups = []struct {
	title  string
	fields []fieldLabel
}{
	{"Document", []fieldLabel{
		{editor.FieldInvoiceNo, "Invoice No", false},
		{editor.FieldDate, "Date", false},
	}},
	{"Company", []fieldLabel{
		{editor.FieldCompanyName, "Name", false},
		{editor.FieldCompanySpecialization, "Specialization", false},
		{editor.FieldCompanyAddressLine1, "Address line 1", false},
		{editor.FieldCompanyAddressLine2, "Address line 2", false},
		{editor.FieldCompanyEmail, "Email", false},
		{editor.FieldCompanyPhone, "Phone", false},
		{editor.FieldCompanyWebsite, "Website", false},
	}},
	{"Client", []fieldLabel{
		{editor.FieldClientCompanyName, "Company", false},
		{editor.FieldClientContactPerson, "Contact person", false},
		{editor.FieldClientLocation, "Location", false},
	}},
	{"Notes", []fieldLabel{
		{editor.FieldNotes, "Project notes", true},
	}},
}

func fieldValue(data invoice.InvoiceData, f editor.Field) string {
	switch f {
	case editor.FieldInvoiceNo:
		return data.InvoiceNo
	case editor.FieldDate:
		return data.Date
	case editor.FieldNotes:
		return data.Notes
	case editor.FieldCompanyName:
		return data.Company.Name
	case editor.FieldCompanySpecialization:
		return data.Company.Specialization
	case editor.FieldCompanyAddressLine1:
		return data.Company.AddressLine1
	case editor.FieldCompanyAddressLine2:
		return data.Company.AddressLine2
	case editor.FieldCompanyEmail:
		return data.Company.Email
	case editor.FieldCompanyPhone:
		return data.Company.Phone
	case editor.FieldCompanyWebsite:
		return data.Company.Website
	case editor.FieldClientCompanyName:
		return data.Client.CompanyName
	case editor.FieldClientContactPerson:
		return data.Client.ContactPerson
	case editor.FieldClientLocation:
		return data.Client.Location
	}
	return ""
}

func buildPageData(st editor.State, sheet template.HTML, pdfEnabled bool) pageData {
	data := st.Data
	out := pageData{
		Title:      "Quotation #" + data.InvoiceNo,
		Stylesheet: template.CSS(render.Stylesheet + editorStyles),
		HasLogo:    data.LogoURL != "",
		HasSign:    data.SignatureURL != "",
		Sheet:      sheet,
		PDFEnabled: pdfEnabled,
		Revision:   st.Revision,
	}
	for _, g := range pageGroups {
		group := pageGroup{Title: g.title}
		for _, fl := range g.fields {
			group.Fields = append(group.Fields, pageField{
				Path:      fl.field.String(),
				Label:     fl.label,
				Value:     fieldValue(data, fl.field),
				Multiline: fl.multiline,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	for i, item := range data.Items {
		out.Items = append(out.Items, pageItem{
			Index:              i,
			Description:        item.Description,
			Quantity:           item.Quantity,
			Price:              item.Price.String(),
			DiscountPercentage: item.DiscountPercentage.String(),
			DiscountAmount:     item.DiscountAmount.String(),
			SACCode:            item.SACCode,
		})
	}
	for i, term := range data.Terms {
		out.Terms = append(out.Terms, pageTerm{Index: i, Text: term})
	}
	return out
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// EditorPage matches GET /
func (s *Server) EditorPage(w http.ResponseWriter, r *http.Request) {
	st := s.session.Snapshot()
	sheet, err := render.Sheet(st.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, buildPageData(st, sheet, s.printer != nil)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, buf.String())
}

const editorStyles = `
.workspace { display: flex; min-height: 100vh; background: #f1f5f9; }
.editor-panel { width: 420px; flex-shrink: 0; height: 100vh; overflow-y: auto; padding: 24px; background: #fff; border-right: 1px solid #e2e8f0; font-size: 13px; }
.editor-panel h2 { margin: 24px 0 8px; font-size: 11px; font-weight: 900; letter-spacing: .2em; text-transform: uppercase; color: #64748b; }
.editor-panel label { display: block; margin-bottom: 8px; font-size: 11px; font-weight: 700; color: #475569; }
.editor-panel input, .editor-panel textarea { display: block; width: 100%; margin-top: 4px; padding: 6px 8px; border: 1px solid #e2e8f0; border-radius: 4px; font: inherit; }
.editor-panel textarea { min-height: 72px; resize: vertical; }
.item-card { margin-bottom: 12px; padding: 12px; border: 1px solid #e2e8f0; border-radius: 6px; }
.item-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 0 8px; }
.term-row { display: flex; gap: 8px; align-items: flex-start; }
.toolbar { display: flex; gap: 8px; margin-bottom: 8px; }
.toolbar button, .toolbar a, .editor-panel button { padding: 6px 12px; border: 1px solid #0f172a; border-radius: 4px; background: #0f172a; color: #fff; font: inherit; font-weight: 700; text-decoration: none; cursor: pointer; }
.editor-panel button.secondary { background: #fff; color: #0f172a; }
.status { min-height: 16px; color: #dc2626; font-size: 11px; }
.preview-pane { flex: 1; overflow: auto; }
.preview-chrome { padding: 12px 24px 0; font-size: 10px; font-weight: 900; letter-spacing: .3em; text-transform: uppercase; color: #94a3b8; }
.preview-canvas { padding: 24px; }
@media print {
  .workspace { display: block; background: #fff; }
  .preview-pane { overflow: visible; }
}
`

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>{{.Stylesheet}}</style>
</head>
<body class="print-body">
<div class="workspace">
  <aside class="editor-panel no-print">
    <div class="toolbar">
      <button type="button" data-action="print">Print</button>
      {{- if .PDFEnabled}}
      <a href="/print.pdf" target="_blank" rel="noopener">Download PDF</a>
      {{- end}}
      <button type="button" class="secondary" data-action="reset">Reset</button>
    </div>
    <p class="status" id="status"></p>

    {{- range .Groups}}
    <h2>{{.Title}}</h2>
    {{- range .Fields}}
    <label>{{.Label}}
      {{- if .Multiline}}
      <textarea data-field="{{.Path}}">{{.Value}}</textarea>
      {{- else}}
      <input type="text" data-field="{{.Path}}" value="{{.Value}}" />
      {{- end}}
    </label>
    {{- end}}
    {{- end}}

    <h2>Items</h2>
    {{- range .Items}}
    <div class="item-card">
      <label>Description <input type="text" data-index="{{.Index}}" data-item-field="description" value="{{.Description}}" /></label>
      <div class="item-grid">
        <label>Qty <input type="number" step="1" data-index="{{.Index}}" data-item-field="quantity" value="{{.Quantity}}" /></label>
        <label>Price <input type="number" step="any" data-index="{{.Index}}" data-item-field="price" value="{{.Price}}" /></label>
        <label>Discount % <input type="number" step="any" data-index="{{.Index}}" data-item-field="discountPercentage" value="{{.DiscountPercentage}}" /></label>
        <label>Discount amount <input type="number" step="any" data-index="{{.Index}}" data-item-field="discountAmount" value="{{.DiscountAmount}}" /></label>
        <label>SAC code <input type="text" data-index="{{.Index}}" data-item-field="sacCode" value="{{.SACCode}}" /></label>
      </div>
      <button type="button" class="secondary" data-action="remove-item" data-index="{{.Index}}">Remove</button>
    </div>
    {{- end}}
    <button type="button" data-action="add-item">Add item</button>

    <h2>Terms</h2>
    {{- range .Terms}}
    <div class="term-row">
      <textarea data-term="{{.Index}}">{{.Text}}</textarea>
      <button type="button" class="secondary" data-action="remove-term" data-index="{{.Index}}">Remove</button>
    </div>
    {{- end}}
    <button type="button" data-action="add-term">Add term</button>

    <h2>Images</h2>
    <label>Logo <input type="file" accept="image/*" data-slot="logo" /></label>
    {{- if .HasLogo}}
    <button type="button" class="secondary" data-action="clear-image" data-slot-name="logo">Remove logo</button>
    {{- end}}
    <label>Signature &amp; stamp <input type="file" accept="image/*" data-slot="signature" /></label>
    {{- if .HasSign}}
    <button type="button" class="secondary" data-action="clear-image" data-slot-name="signature">Remove signature</button>
    {{- end}}
  </aside>

  <main class="preview-pane">
    <p class="preview-chrome">Live preview &middot; revision <span id="revision">{{.Revision}}</span></p>
    <div class="preview-canvas" id="sheet">{{.Sheet}}</div>
  </main>
</div>
<script>
(function () {
  var sheet = document.getElementById('sheet');
  var status = document.getElementById('status');
  var revision = document.getElementById('revision');
  var queue = Promise.resolve();

  function report(err) { status.textContent = err.message; }

  // Edits are sent one at a time so the server applies them in typing order.
  function enqueue(fn) {
    queue = queue.then(fn).then(function () { status.textContent = ''; }).catch(report);
    return queue;
  }

  function send(method, url, body) {
    var opts = { method: method, headers: {} };
    if (body instanceof FormData) {
      opts.body = body;
    } else if (body !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(body);
    }
    return fetch(url, opts).then(function (res) {
      if (!res.ok) {
        return res.json().catch(function () { return {}; }).then(function (e) {
          throw new Error(e.message || res.statusText);
        });
      }
      if (res.status === 204) { return null; }
      return res.json();
    });
  }

  function refresh(state) {
    if (state && typeof state.revision === 'number') { revision.textContent = state.revision; }
    return fetch('/preview/sheet').then(function (res) { return res.text(); }).then(function (html) {
      sheet.innerHTML = html;
    });
  }

  document.querySelectorAll('[data-field]').forEach(function (el) {
    el.addEventListener('input', function () {
      enqueue(function () {
        return send('PATCH', '/api/invoice/fields', { field: el.dataset.field, value: el.value }).then(refresh);
      });
    });
  });

  document.querySelectorAll('[data-item-field]').forEach(function (el) {
    el.addEventListener('input', function () {
      enqueue(function () {
        return send('PATCH', '/api/invoice/items/' + el.dataset.index, { field: el.dataset.itemField, value: el.value }).then(refresh);
      });
    });
  });

  document.querySelectorAll('[data-term]').forEach(function (el) {
    el.addEventListener('input', function () {
      enqueue(function () {
        return send('PATCH', '/api/invoice/terms/' + el.dataset.term, { text: el.value }).then(refresh);
      });
    });
  });

  document.querySelectorAll('[data-slot]').forEach(function (el) {
    el.addEventListener('change', function () {
      if (!el.files.length) { return; }
      var form = new FormData();
      form.append('file', el.files[0]);
      enqueue(function () {
        return send('POST', '/api/invoice/images/' + el.dataset.slot, form).then(function () { location.reload(); });
      });
    });
  });

  var actions = {
    'add-item': function () { return send('POST', '/api/invoice/items'); },
    'remove-item': function (el) { return send('DELETE', '/api/invoice/items/' + el.dataset.index); },
    'add-term': function () { return send('POST', '/api/invoice/terms', { text: '' }); },
    'remove-term': function (el) { return send('DELETE', '/api/invoice/terms/' + el.dataset.index); },
    'clear-image': function (el) { return send('DELETE', '/api/invoice/images/' + el.dataset.slotName); },
    'reset': function () { return send('POST', '/api/invoice/reset'); }
  };

  document.querySelectorAll('[data-action]').forEach(function (el) {
    el.addEventListener('click', function () {
      if (el.dataset.action === 'print') {
        window.print();
        return;
      }
      var run = actions[el.dataset.action];
      enqueue(function () {
        return run(el).then(function () { location.reload(); });
      });
    });
  });
})();
</script>
</body>
</html>
`
