package render

// Stylesheet styles the sheet on screen and in print. The sheet is exactly
// one A4 page; its 15mm padding is the page margin, so @page adds none.
// Elements marked no-print (editing chrome) or preview-chrome (the grey
// canvas around the sheet) are dropped from printed output.
const Stylesheet = `
@page { size: A4; margin: 0; }
* { box-sizing: border-box; }
body { margin: 0; font-family: 'Inter', 'Helvetica Neue', Arial, sans-serif; color: #1e293b; }
p, h1, h2, h3, h4 { margin: 0; }

.sheet { position: relative; display: flex; flex-direction: column; width: 210mm; height: 297mm; margin: 0 auto; padding: 15mm; overflow: hidden; background: #fff; box-shadow: 0 25px 50px -12px rgba(15, 23, 42, .25); }
.label { font-size: 9px; font-weight: 900; letter-spacing: .3em; text-transform: uppercase; color: #cbd5e1; margin-bottom: 10px; }

.sheet-header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 48px; }
.brand { display: flex; align-items: center; gap: 24px; }
.logo { width: 80px; height: 80px; object-fit: contain; }
.placeholder { display: flex; align-items: center; justify-content: center; border: 1px dashed #e2e8f0; border-radius: 4px; background: #f8fafc; font-size: 8px; font-weight: 900; text-transform: uppercase; color: #cbd5e1; text-align: center; }
.company-name { font-size: 24px; font-weight: 900; text-transform: uppercase; color: #0f172a; line-height: 1; }
.company-tagline { margin-top: 8px; font-size: 10px; font-weight: 900; letter-spacing: .3em; text-transform: uppercase; color: #64748b; }
.reference { text-align: right; }
.watermark { font-size: 36px; font-weight: 900; color: #f1f5f9; letter-spacing: -.05em; margin-bottom: -15px; }
.reference .label { position: relative; margin-bottom: 4px; color: #94a3b8; }
.invoice-no { position: relative; font-size: 18px; font-weight: 900; color: #0f172a; }
.invoice-date { margin-top: 4px; font-size: 12px; font-weight: 700; letter-spacing: .1em; text-transform: uppercase; color: #64748b; }

.addresses { display: grid; grid-template-columns: 1fr 1fr; gap: 80px; margin-bottom: 48px; }
.office { border-left: 2px solid #3a86ff; padding-left: 24px; font-size: 11px; font-weight: 700; line-height: 1.6; color: #475569; }
.billed-to { text-align: right; padding-right: 8px; }
.client-name { font-size: 15px; font-weight: 900; color: #0f172a; }
.client-contact { margin-top: 4px; font-size: 11px; font-weight: 700; color: #64748b; }
.client-location { margin-top: 4px; font-size: 10px; font-weight: 900; letter-spacing: .1em; text-transform: uppercase; color: #3a86ff; }

.items { flex-grow: 1; width: 100%; border-collapse: collapse; align-self: flex-start; }
.items th { padding: 14px 20px; background: #f8fafc; border-top: 1px solid #f1f5f9; border-bottom: 1px solid #f1f5f9; font-size: 9px; font-weight: 900; letter-spacing: .2em; text-transform: uppercase; color: #94a3b8; text-align: left; }
.items td { padding: 16px 20px; border-bottom: 1px solid #f8fafc; vertical-align: top; }
.items .no { width: 56px; text-align: center; font-size: 10px; font-weight: 900; color: #cbd5e1; }
.items .qty { width: 72px; text-align: center; font-size: 12px; font-weight: 900; color: #64748b; }
.items .amount { width: 150px; text-align: right; font-size: 13px; font-weight: 900; color: #0f172a; }
.description { font-size: 12px; font-weight: 900; color: #0f172a; }
.discount-note { display: inline-block; margin-top: 4px; font-size: 8px; font-weight: 900; font-style: italic; letter-spacing: .1em; text-transform: uppercase; color: #64748b; opacity: .6; }

.summary { display: flex; justify-content: space-between; align-items: flex-start; margin: 40px 0 48px; padding-top: 28px; border-top: 1px solid #f1f5f9; }
.notes { width: 50%; }
.notes p { border-left: 2px solid #f1f5f9; padding-left: 16px; white-space: pre-wrap; font-size: 10px; font-weight: 700; line-height: 1.6; text-transform: uppercase; color: #64748b; }
.totals { width: 35%; }
.totals .row { display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px; font-size: 10px; font-weight: 700; letter-spacing: .1em; text-transform: uppercase; color: #94a3b8; }
.totals .discount { color: #0f172a; }
.strong { font-weight: 900; color: #0f172a; }
.rule { height: 1px; background: #f1f5f9; margin: 16px 0; }
.totals .payable { align-items: flex-end; border-bottom: 2px solid #0f172a; padding-bottom: 4px; }
.payable-label { display: block; font-weight: 900; letter-spacing: .3em; color: #0f172a; }
.payable-hint { display: block; font-size: 8px; font-style: italic; color: #cbd5e1; }
.grand-total { font-size: 24px; font-weight: 900; letter-spacing: -.05em; line-height: 1; color: #0f172a; }

.closing { display: flex; justify-content: space-between; align-items: flex-end; margin-bottom: 40px; }
.terms { width: 45%; }
.terms ul { margin: 0; padding: 0; list-style: none; }
.terms li { margin-bottom: 6px; font-size: 9px; font-weight: 700; line-height: 1.2; text-transform: uppercase; color: #94a3b8; }
.terms li::before { content: "\2022"; margin-right: 8px; color: #3a86ff; opacity: .4; }
.signature { text-align: center; }
.signature-image { display: block; max-width: 180px; max-height: 96px; margin: 0 auto 4px; object-fit: contain; mix-blend-mode: multiply; }
.signature .placeholder { width: 160px; height: 80px; }
.signatory { width: 208px; margin: 0 auto; padding-top: 8px; border-top: 1px solid #0f172a; font-size: 9px; font-weight: 900; letter-spacing: .4em; text-transform: uppercase; color: #0f172a; }

.sheet-footer { display: flex; gap: 24px; margin-top: auto; padding-top: 28px; border-top: 1px solid #f1f5f9; font-size: 9px; font-weight: 900; letter-spacing: .1em; text-transform: uppercase; color: #94a3b8; }

@media print {
  .no-print, .preview-chrome { display: none !important; }
  body, .print-body { background: #fff; }
  .preview-canvas { padding: 0 !important; background: #fff !important; }
  .sheet { box-shadow: none; margin: 0; }
}
`
